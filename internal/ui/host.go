package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"dialogo/internal/config"
	"dialogo/internal/trace"
	"dialogo/internal/ui/textutil"
	"dialogo/pkg/modal"
)

// DefaultWidth is the modal content width when none is configured.
const DefaultWidth = 56

// Clickable regions in the modal header.
const (
	zoneBack  = "modal-back"
	zoneClose = "modal-close"
)

// StateMsg carries a controller snapshot into the Bubble Tea loop.
type StateMsg struct {
	State modal.State[View]
}

// Host is the root tea.Model. It renders a base view and, while the
// controller is open, the active modal view in a box centered over it.
//
// Snapshots arrive through a one-slot mailbox: the subscriber replaces any
// undelivered snapshot, and a waiting tea.Cmd turns the latest one into a
// StateMsg. Controller operations may therefore be called from any View's
// Update without blocking the loop.
type Host struct {
	ctrl        *modal.Controller[View]
	base        View
	keys        KeyMap
	help        help.Model
	escape      string
	width       int
	borderColor string

	state     modal.State[View]
	active    View
	direction trace.Direction

	termWidth  int
	termHeight int

	zones   *zone.Manager
	mailbox chan modal.State[View]
	unsub   modal.Unsubscribe
	closed  sync.Once
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithEscape sets what Esc does: config.EscapeClose or config.EscapeBack.
func WithEscape(mode string) HostOption {
	return func(h *Host) {
		if mode == config.EscapeClose || mode == config.EscapeBack {
			h.escape = mode
		}
	}
}

// WithWidth sets the modal content width.
func WithWidth(width int) HostOption {
	return func(h *Host) {
		if width > 0 {
			h.width = width
		}
	}
}

// WithBorderColor sets the modal border color.
func WithBorderColor(color string) HostOption {
	return func(h *Host) {
		h.borderColor = color
	}
}

// NewHost subscribes to ctrl and seeds the host with its current state.
// Call Close when the program exits.
func NewHost(ctrl *modal.Controller[View], base View, opts ...HostOption) *Host {
	h := &Host{
		ctrl:        ctrl,
		base:        base,
		help:        newHelpModel(),
		escape:      config.EscapeClose,
		width:       DefaultWidth,
		borderColor: ColorHighlight,
		zones:       zone.New(),
		mailbox:     make(chan modal.State[View], 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.keys = DefaultKeyMap(h.escape)
	h.unsub = ctrl.Subscribe(h.deliver)
	h.setState(ctrl.State())
	return h
}

// Close unsubscribes the host from its controller and stops mouse zone
// tracking. Safe to call twice.
func (h *Host) Close() {
	h.closed.Do(func() {
		if h.unsub != nil {
			h.unsub()
		}
		h.zones.Close()
	})
}

// deliver is the controller subscriber. It never blocks: a snapshot still
// waiting in the mailbox is replaced by the newer one.
func (h *Host) deliver(s modal.State[View]) {
	for {
		select {
		case h.mailbox <- s:
			return
		default:
		}
		select {
		case <-h.mailbox:
		default:
		}
	}
}

// waitForState blocks until a snapshot is delivered.
func (h *Host) waitForState() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{State: <-h.mailbox}
	}
}

// State returns the last snapshot the host applied.
func (h *Host) State() modal.State[View] {
	return h.state
}

// Active returns the view shown in the modal, if any.
func (h *Host) Active() (View, bool) {
	if !h.state.IsOpen || h.active == nil {
		return nil, false
	}
	return h.active, true
}

// Forward reports whether the last change moved deeper into the flow.
func (h *Host) Forward() bool {
	return h.direction == trace.DirectionForward
}

// Direction returns how the active view moved on the last change.
func (h *Host) Direction() trace.Direction {
	return h.direction
}

// setState applies a snapshot. It returns the Init command of a view that
// has just become visible.
func (h *Host) setState(s modal.State[View]) tea.Cmd {
	prev := h.state
	h.state = s
	h.direction = trace.DirectionOf(prev, s)
	h.syncKeys()

	entry, ok := s.Active()
	if !ok {
		h.active = nil
		return nil
	}
	h.active = entry.Content
	if h.active == nil || !s.IsOpen {
		return nil
	}
	if entry.ID != prev.ActiveID() || !prev.IsOpen {
		cmd := h.active.Init()
		if h.termWidth > 0 {
			var sizeCmd tea.Cmd
			h.active, sizeCmd = h.active.Update(h.contentSize())
			cmd = tea.Batch(cmd, sizeCmd)
		}
		return cmd
	}
	return nil
}

func (h *Host) syncKeys() {
	h.keys.Back.SetEnabled(h.state.IsOpen && h.state.HasHistory)
	h.keys.Dismiss.SetEnabled(h.state.IsOpen)
}

// contentSize is the size message forwarded to the active view.
func (h *Host) contentSize() tea.WindowSizeMsg {
	height := h.termHeight - 8
	if height < 1 {
		height = 1
	}
	return tea.WindowSizeMsg{Width: h.width, Height: height}
}

func (h *Host) Init() tea.Cmd {
	cmds := []tea.Cmd{h.waitForState()}
	if h.base != nil {
		cmds = append(cmds, h.base.Init())
	}
	if v, ok := h.Active(); ok {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		return h, tea.Batch(h.setState(msg.State), h.waitForState())

	case tea.WindowSizeMsg:
		h.termWidth, h.termHeight = msg.Width, msg.Height
		h.help.Width = h.width
		var cmds []tea.Cmd
		if h.base != nil {
			var cmd tea.Cmd
			h.base, cmd = h.base.Update(msg)
			cmds = append(cmds, cmd)
		}
		if h.active != nil {
			var cmd tea.Cmd
			h.active, cmd = h.active.Update(h.contentSize())
			cmds = append(cmds, cmd)
		}
		return h, tea.Batch(cmds...)

	case tea.MouseMsg:
		if _, open := h.Active(); open && msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			switch {
			case h.zones.Get(zoneClose).InBounds(msg):
				h.ctrl.Close()
				return h, nil
			case h.state.HasHistory && h.zones.Get(zoneBack).InBounds(msg):
				h.ctrl.Back()
				return h, nil
			}
		}

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Quit) {
			return h, tea.Quit
		}
		if _, open := h.Active(); open {
			switch {
			case key.Matches(msg, h.keys.Dismiss):
				if h.escape == config.EscapeBack {
					h.ctrl.Back()
				} else {
					h.ctrl.Close()
				}
				return h, nil
			case key.Matches(msg, h.keys.Back):
				h.ctrl.Back()
				return h, nil
			}
			var cmd tea.Cmd
			h.active, cmd = h.active.Update(msg)
			return h, cmd
		}
	}

	if v, open := h.Active(); open {
		var cmd tea.Cmd
		h.active, cmd = v.Update(msg)
		return h, cmd
	}
	if h.base != nil {
		var cmd tea.Cmd
		h.base, cmd = h.base.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *Host) View() string {
	var base string
	if h.base != nil {
		base = h.base.View()
	}
	v, open := h.Active()
	if !open {
		return h.zones.Scan(base)
	}

	box := h.renderBox(v)
	if h.termWidth == 0 || h.termHeight == 0 {
		return h.zones.Scan(base + "\n" + box)
	}

	backdrop := lipgloss.NewStyle().
		Width(h.termWidth).
		Height(h.termHeight).
		MaxWidth(h.termWidth).
		MaxHeight(h.termHeight).
		Inherit(Styles.Backdrop).
		Render(base)
	x := (h.termWidth - lipgloss.Width(box)) / 2
	y := (h.termHeight - lipgloss.Height(box)) / 2
	return h.zones.Scan(textutil.Splice(backdrop, box, x, y))
}

// renderBox renders the active view with a header and the help bar.
func (h *Host) renderBox(v View) string {
	var b strings.Builder
	b.WriteString(h.header())
	b.WriteString("\n\n")
	b.WriteString(v.View())
	b.WriteString("\n\n")
	b.WriteString(h.help.View(h.keys))
	return boxStyle(h.width, h.borderColor).Render(b.String())
}

// header renders "‹ back  step 2 ›" on the left and a close button on the
// right. The back button is only present while there is history.
func (h *Host) header() string {
	inner := h.width - Styles.Box.GetHorizontalPadding()

	label := "step " + strconv.Itoa(h.state.ActiveID()+1)
	switch h.direction {
	case trace.DirectionForward:
		label += " ›"
	case trace.DirectionBackward:
		label = "‹ " + label
	}

	var left string
	if h.state.HasHistory {
		left = Styles.Selected.Render(h.zones.Mark(zoneBack, "‹ back")) + "  "
	}
	left += Styles.Muted.Render(label)
	closeBtn := Styles.Hint.Render(h.zones.Mark(zoneClose, "✕"))

	gap := inner - lipgloss.Width(left) - lipgloss.Width(closeBtn)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + closeBtn
}
