package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogo/internal/config"
	"dialogo/internal/trace"
	"dialogo/pkg/modal"
)

type stubView struct {
	name  string
	msgs  []tea.Msg
	inits int
}

func (s *stubView) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubView) Update(msg tea.Msg) (View, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubView) View() string { return s.name }

func (s *stubView) keys() []string {
	var out []string
	for _, m := range s.msgs {
		if k, ok := m.(tea.KeyMsg); ok {
			out = append(out, k.String())
		}
	}
	return out
}

// pump hands the pending snapshot to the host the way the program loop does.
func pump(t *testing.T, h *Host) {
	t.Helper()
	require.Len(t, h.mailbox, 1, "no snapshot pending")
	msg := h.waitForState()()
	h.Update(msg)
}

func newTestHost(t *testing.T, opts ...HostOption) (*Host, *modal.Controller[View], *stubView) {
	t.Helper()
	ctrl := modal.New[View]()
	base := &stubView{name: "base page"}
	h := NewHost(ctrl, base, opts...)
	t.Cleanup(h.Close)
	return h, ctrl, base
}

func TestNewHost_SeedsFromCurrentState(t *testing.T) {
	ctrl := modal.New[View]()
	a := &stubView{name: "A"}
	ctrl.Open(a)

	h := NewHost(ctrl, &stubView{name: "base"})
	defer h.Close()

	v, ok := h.Active()
	require.True(t, ok)
	assert.Same(t, a, v)
	assert.Equal(t, 1, a.inits)
	assert.Empty(t, h.mailbox)
}

func TestHost_MailboxKeepsLatestSnapshot(t *testing.T) {
	h, ctrl, _ := newTestHost(t)

	ctrl.Open(&stubView{name: "A"})
	ctrl.Navigate(&stubView{name: "B"})
	ctrl.Navigate(&stubView{name: "C"})

	msg, ok := h.waitForState()().(StateMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.State.ActiveID())
	assert.Empty(t, h.mailbox)
}

func TestHost_CloseUnsubscribes(t *testing.T) {
	ctrl := modal.New[View]()
	h := NewHost(ctrl, nil)
	require.Equal(t, 1, ctrl.Subscribers())

	h.Close()
	h.Close()
	assert.Equal(t, 0, ctrl.Subscribers())

	ctrl.Open(&stubView{name: "A"})
	assert.Empty(t, h.mailbox)
}

func TestHost_EscapeCloses(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	ctrl.Open(&stubView{name: "A"})
	ctrl.Navigate(&stubView{name: "B"})
	pump(t, h)

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.State().IsOpen)
	assert.Equal(t, 0, ctrl.Depth())

	pump(t, h)
	_, open := h.Active()
	assert.False(t, open)
}

func TestHost_EscapeGoesBack(t *testing.T) {
	h, ctrl, _ := newTestHost(t, WithEscape(config.EscapeBack))
	ctrl.Open(&stubView{name: "A"})
	ctrl.Navigate(&stubView{name: "B"})
	pump(t, h)

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	st := ctrl.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, 0, st.ActiveID())

	pump(t, h)
	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.State().IsOpen)
}

func TestHost_BackKeyNeedsHistory(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	a := &stubView{name: "A"}
	ctrl.Open(a)
	pump(t, h)

	// No history: backspace belongs to the view.
	h.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, []string{"backspace"}, a.keys())
	assert.Equal(t, 1, ctrl.Depth())

	b := &stubView{name: "B"}
	ctrl.Navigate(b)
	pump(t, h)

	h.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, b.keys())
	assert.Equal(t, 0, ctrl.State().ActiveID())

	pump(t, h)
	h.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, []string{"backspace", "left"}, a.keys())
}

func TestHost_RoutesKeysByVisibility(t *testing.T) {
	h, ctrl, base := newTestHost(t)
	a := &stubView{name: "A"}

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, []string{"x"}, base.keys())

	ctrl.Open(a)
	pump(t, h)
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, []string{"y"}, a.keys())

	ctrl.Hide()
	pump(t, h)
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	assert.Equal(t, []string{"x", "z"}, base.keys())
	assert.Equal(t, []string{"y"}, a.keys())
}

func TestHost_QuitKey(t *testing.T) {
	h, _, _ := newTestHost(t)
	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHost_Direction(t *testing.T) {
	h, ctrl, _ := newTestHost(t)

	ctrl.Open(&stubView{name: "A"})
	pump(t, h)
	assert.True(t, h.Forward())

	ctrl.Navigate(&stubView{name: "B"})
	pump(t, h)
	assert.True(t, h.Forward())

	ctrl.Back()
	pump(t, h)
	assert.False(t, h.Forward())
	assert.Equal(t, trace.DirectionBackward, h.Direction())

	ctrl.Hide()
	pump(t, h)
	assert.Equal(t, trace.DirectionNone, h.Direction())
}

func TestHost_InitsViewWhenItBecomesVisible(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	a := &stubView{name: "A"}
	b := &stubView{name: "B"}

	ctrl.Open(a)
	pump(t, h)
	assert.Equal(t, 1, a.inits)

	ctrl.Navigate(b)
	pump(t, h)
	ctrl.Back()
	pump(t, h)
	assert.Equal(t, 1, b.inits)
	assert.Equal(t, 2, a.inits)
}

func TestHost_View(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	assert.Equal(t, "base page", h.View())

	ctrl.Open(&stubView{name: "first view"})
	pump(t, h)
	out := h.View()
	assert.Contains(t, out, "base page")
	assert.Contains(t, out, "first view")
	assert.Contains(t, out, "esc close")
	assert.NotContains(t, out, "← back")

	ctrl.Navigate(&stubView{name: "second view"})
	pump(t, h)
	out = h.View()
	assert.Contains(t, out, "second view")
	assert.NotContains(t, out, "first view")
	assert.Contains(t, out, "← back")
	assert.Contains(t, out, "step 2")

	ctrl.Hide()
	pump(t, h)
	assert.Equal(t, "base page", h.View())
}

func TestHost_ViewCentersBoxOverBase(t *testing.T) {
	h, ctrl, _ := newTestHost(t, WithWidth(20))
	h.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	ctrl.Open(&stubView{name: "boxed"})
	pump(t, h)

	lines := strings.Split(h.View(), "\n")
	assert.Len(t, lines, 30)
	assert.True(t, strings.HasPrefix(lines[0], "base page"))

	row := -1
	for i, l := range lines {
		if strings.Contains(l, "boxed") {
			row = i
			break
		}
	}
	require.NotEqual(t, -1, row)
	assert.Greater(t, row, 5)
	assert.Greater(t, strings.Index(lines[row], "boxed"), 20)
}

func TestHost_ForwardsSizeToActiveView(t *testing.T) {
	h, ctrl, _ := newTestHost(t, WithWidth(30))
	a := &stubView{name: "A"}
	ctrl.Open(a)
	pump(t, h)

	h.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	var got tea.WindowSizeMsg
	for _, m := range a.msgs {
		if ws, ok := m.(tea.WindowSizeMsg); ok {
			got = ws
		}
	}
	assert.Equal(t, 30, got.Width)
	assert.Equal(t, 32, got.Height)
}

// clickZone renders the host, waits for the zone to be registered and clicks
// its top-left cell.
func clickZone(t *testing.T, h *Host, id string) {
	t.Helper()
	h.View()
	require.Eventually(t, func() bool {
		return !h.zones.Get(id).IsZero()
	}, time.Second, 5*time.Millisecond, "zone %q never registered", id)

	zi := h.zones.Get(id)
	h.Update(tea.MouseMsg{
		X:      zi.StartX,
		Y:      zi.StartY,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
}

func TestHost_MouseBackAndClose(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	h.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	ctrl.Open(&stubView{name: "A"})
	ctrl.Navigate(&stubView{name: "B"})
	pump(t, h)

	clickZone(t, h, zoneBack)
	st := ctrl.State()
	assert.True(t, st.IsOpen)
	assert.Equal(t, 0, st.ActiveID())

	pump(t, h)
	clickZone(t, h, zoneClose)
	assert.False(t, ctrl.State().IsOpen)
}

func TestHost_MouseOutsideZonesGoesToView(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	a := &stubView{name: "A"}
	ctrl.Open(a)
	pump(t, h)

	click := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	h.Update(click)
	assert.True(t, ctrl.State().IsOpen)
	assert.Contains(t, a.msgs, tea.Msg(click))
}

func TestHost_ViewStripsZoneMarkers(t *testing.T) {
	h, ctrl, _ := newTestHost(t)
	ctrl.Open(&stubView{name: "A"})
	ctrl.Navigate(&stubView{name: "B"})
	pump(t, h)

	out := h.View()
	assert.Contains(t, out, "‹ back")
	assert.Contains(t, out, "✕")
	assert.NotRegexp(t, `\x1b\[\d+z`, out)
}

func TestTextView(t *testing.T) {
	tests := []struct {
		name      string
		content   any
		wantTitle string
		wantBody  string
	}{
		{"string", "Hello World", "", "Hello World"},
		{"titled object", map[string]any{"title": "Details", "body": "more"}, "Details", "more"},
		{"plain object", map[string]any{"type": "div"}, "", `{"type":"div"}`},
		{"number", 42.0, "", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTextView(tt.content)
			assert.Equal(t, tt.wantTitle, v.Title)
			assert.Equal(t, tt.wantBody, v.Body)
			assert.Contains(t, v.View(), tt.wantBody)
		})
	}
}

func TestTextView_Markdown(t *testing.T) {
	v := NewTextView(map[string]any{"title": "Notes", "markdown": "Some *plain* words here."})
	assert.Equal(t, "Notes", v.Title)
	v.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	out := ansi.Strip(v.View())
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "words here.")
	assert.Equal(t, 40, v.renderedWidth)
}

func TestContentView_PassesViewsThrough(t *testing.T) {
	a := &stubView{name: "A"}
	assert.Same(t, a, ContentView(a))

	tv, ok := ContentView("text").(*TextView)
	require.True(t, ok)
	assert.Equal(t, "text", tv.Body)
}
