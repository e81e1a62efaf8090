package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"dialogo/internal/jsonutil"
	"dialogo/internal/ui/textutil"
)

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Modal content is a View. Views that keep state across updates should be
// pointers so the controller's stack and the host share one instance.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// TextView renders opaque content: a title and either a plain or a markdown
// body.
type TextView struct {
	Title    string
	Body     string
	Markdown string // Rendered with glamour; takes precedence over Body
	Width    int    // 0 means no wrapping

	rendered      string
	renderedWidth int
}

// NewTextView builds a TextView from parsed script content. Strings become the
// body. Objects use their "title", "body" and "markdown" fields when present
// and render as JSON otherwise. Anything else is rendered with
// jsonutil.ToString.
func NewTextView(content any) *TextView {
	switch v := content.(type) {
	case string:
		return &TextView{Body: v}
	case map[string]any:
		t := &TextView{
			Title:    jsonutil.GetString(v, "title"),
			Body:     jsonutil.GetString(v, "body"),
			Markdown: jsonutil.GetString(v, "markdown"),
		}
		if t.Title == "" && t.Body == "" && t.Markdown == "" {
			t.Body = jsonutil.ToString(v)
		}
		return t
	default:
		return &TextView{Body: jsonutil.ToString(v)}
	}
}

// ContentView converts parsed content into a View, passing Views through.
func ContentView(content any) View {
	if v, ok := content.(View); ok {
		return v
	}
	return NewTextView(content)
}

func (t *TextView) Init() tea.Cmd { return nil }

func (t *TextView) Update(msg tea.Msg) (View, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		t.Width = ws.Width
	}
	return t, nil
}

func (t *TextView) View() string {
	var b strings.Builder
	if t.Title != "" {
		title := t.Title
		if t.Width > 0 {
			title = textutil.Truncate(title, t.Width)
		}
		b.WriteString(Styles.Title.Render(title))
		if t.Body != "" || t.Markdown != "" {
			b.WriteString("\n\n")
		}
	}
	switch {
	case t.Markdown != "":
		b.WriteString(t.renderMarkdown())
	case t.Body != "":
		body := Styles.Normal
		if t.Width > 0 {
			body = body.Width(t.Width)
		}
		b.WriteString(body.Render(t.Body))
	}
	return b.String()
}

// renderMarkdown renders Markdown once per width.
func (t *TextView) renderMarkdown() string {
	if t.rendered != "" && t.renderedWidth == t.Width {
		return t.rendered
	}
	opts := []glamour.TermRendererOption{glamour.WithStylePath("dark")}
	if t.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(t.Width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return t.Markdown
	}
	out, err := renderer.Render(t.Markdown)
	if err != nil {
		return t.Markdown
	}
	// Glamour pads with blank lines; the box supplies its own spacing.
	t.rendered = strings.Trim(out, "\n")
	t.renderedWidth = t.Width
	return t.rendered
}
