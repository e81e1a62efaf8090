// Package demo is a three-step wizard that drives a modal controller from
// inside Bubble Tea views. The page behind the modal shows which step is
// active; each step calls Navigate, Back, Hide or Close on the controller.
package demo

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dialogo/internal/ui"
	"dialogo/pkg/modal"
)

// Steps is the number of views in the wizard.
const Steps = 3

// Page is the base view under the modal.
type Page struct {
	ctrl  *modal.Controller[ui.View]
	width int
}

// NewPage returns the base page for ctrl.
func NewPage(ctrl *modal.Controller[ui.View]) *Page {
	return &Page{ctrl: ctrl}
}

func (p *Page) Init() tea.Cmd { return nil }

func (p *Page) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "o":
			p.ctrl.Open(NewStepOne(p.ctrl))
		case "s":
			p.ctrl.Show()
		case "q":
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *Page) View() string {
	st := p.ctrl.State()
	var b strings.Builder
	b.WriteString(ui.Styles.Title.Render("dialogo"))
	b.WriteString("\n\n")
	b.WriteString("Wizard progress: ")
	b.WriteString(StepIndicator(st.ActiveID(), Steps))
	b.WriteString("\n\n")

	switch {
	case st.IsOpen:
	case st.ActiveView != nil:
		b.WriteString(ui.Styles.Muted.Render("The wizard is hidden on step " + stepLabel(st.ActiveID()) + "."))
		b.WriteString("\n")
		b.WriteString(ui.Styles.Hint.Render("s show • o restart • q quit"))
	default:
		b.WriteString(ui.Styles.Hint.Render("o open wizard • q quit"))
	}
	return b.String()
}

// StepIndicator renders one marker per step with the active one highlighted.
// An active index outside [0, total) highlights nothing.
func StepIndicator(active, total int) string {
	marks := make([]string, total)
	for i := range marks {
		if i == active {
			marks[i] = ui.Styles.Selected.Render("●")
		} else {
			marks[i] = ui.Styles.Muted.Render("○")
		}
	}
	return strings.Join(marks, " ")
}

func stepLabel(id int) string {
	switch id {
	case 0:
		return "one"
	case 1:
		return "two"
	case 2:
		return "three"
	default:
		return "?"
	}
}
