package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dialogo/internal/ui"
	"dialogo/pkg/modal"
)

// StepOne asks for a name.
type StepOne struct {
	ctrl  *modal.Controller[ui.View]
	input textinput.Model
	err   string
}

func NewStepOne(ctrl *modal.Controller[ui.View]) *StepOne {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()
	return &StepOne{ctrl: ctrl, input: ti}
}

// Name returns the trimmed input value.
func (s *StepOne) Name() string {
	return strings.TrimSpace(s.input.Value())
}

func (s *StepOne) Init() tea.Cmd {
	return textinput.Blink
}

func (s *StepOne) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 8 {
			s.input.Width = msg.Width - 8
		}
		return s, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			if s.Name() == "" {
				s.err = "a name is required"
				return s, nil
			}
			s.err = ""
			s.ctrl.Navigate(NewStepTwo(s.ctrl, s.Name()))
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StepOne) View() string {
	var b strings.Builder
	b.WriteString(ui.Styles.Title.Render("Who is setting this up?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(ui.Styles.Selected.Render(s.err))
	}
	b.WriteString("\n\n")
	b.WriteString(ui.Styles.Hint.Render("enter next"))
	return b.String()
}

// StepTwo shows a scrollable summary.
type StepTwo struct {
	ctrl *modal.Controller[ui.View]
	name string
	vp   viewport.Model
}

func NewStepTwo(ctrl *modal.Controller[ui.View], name string) *StepTwo {
	vp := viewport.New(40, 6)
	vp.SetContent(summary(name))
	return &StepTwo{ctrl: ctrl, name: name, vp: vp}
}

func (s *StepTwo) Name() string { return s.name }

func (s *StepTwo) Init() tea.Cmd { return nil }

func (s *StepTwo) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			s.vp.Width = msg.Width - 4
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			s.ctrl.Navigate(NewStepThree(s.ctrl, s.name))
			return s, nil
		case "h":
			s.ctrl.Hide()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *StepTwo) View() string {
	var b strings.Builder
	b.WriteString(ui.Styles.Title.Render("Review"))
	b.WriteString("\n\n")
	b.WriteString(s.vp.View())
	b.WriteString("\n\n")
	b.WriteString(ui.Styles.Hint.Render("↑/↓ scroll • enter next • h hide"))
	return b.String()
}

func summary(name string) string {
	lines := []string{
		fmt.Sprintf("Account owner: %s", name),
		"",
		"The wizard will:",
		"  1. create a workspace named after you",
		"  2. invite nobody yet",
		"  3. enable default notifications",
		"  4. keep every other setting unchanged",
		"",
		"Going back keeps what you typed.",
		"Hiding keeps your place; press s to return.",
	}
	return strings.Join(lines, "\n")
}

// StepThree confirms the flow.
type StepThree struct {
	ctrl *modal.Controller[ui.View]
	name string
}

func NewStepThree(ctrl *modal.Controller[ui.View], name string) *StepThree {
	return &StepThree{ctrl: ctrl, name: name}
}

func (s *StepThree) Init() tea.Cmd { return nil }

func (s *StepThree) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", "y":
			s.ctrl.Close()
		case "r":
			s.ctrl.Open(NewStepOne(s.ctrl))
		}
	}
	return s, nil
}

func (s *StepThree) View() string {
	var b strings.Builder
	b.WriteString(ui.Styles.Title.Render("All set"))
	b.WriteString("\n\n")
	b.WriteString(ui.Styles.Normal.Render(fmt.Sprintf("Thanks, %s.", s.name)))
	b.WriteString("\n\n")
	b.WriteString(ui.Styles.Hint.Render("enter finish • r start over"))
	return b.String()
}
