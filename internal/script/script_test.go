package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogo/pkg/modal"
)

func TestParse_Scenario(t *testing.T) {
	src := `
# wizard walk-through
open A
navigate B
NAVIGATE {"title":"C"}

back
hide
show
close
`
	steps, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, steps, 7)
	assert.Equal(t, Step{Line: 3, Op: modal.OpOpen, Content: "A"}, steps[0])
	assert.Equal(t, Step{Line: 4, Op: modal.OpNavigate, Content: "B"}, steps[1])
	assert.Equal(t, Step{Line: 5, Op: modal.OpNavigate, Content: map[string]any{"title": "C"}}, steps[2])
	assert.Equal(t, modal.OpBack, steps[3].Op)
	assert.Equal(t, 7, steps[3].Line)
	assert.Nil(t, steps[3].Content)
	assert.Equal(t, []modal.Op{modal.OpHide, modal.OpShow, modal.OpClose}, []modal.Op{steps[4].Op, steps[5].Op, steps[6].Op})
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"Hello World", "Hello World"},
		{"<div>Hello World</div>", "<div>Hello World</div>"},
		{`"quoted"`, "quoted"},
		{"42", 42.0},
		{"true", true},
		{"null", nil},
		{`[1,"two"]`, []any{1.0, "two"}},
		{`{"type":"div","props":{"children":"x"}}`, map[string]any{"type": "div", "props": map[string]any{"children": "x"}}},
		{`{broken`, `{broken`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseContent(tt.in))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		wantErr error
	}{
		{"unknown op", "open A\nteleport B\n", 2, ErrUnknownOp},
		{"open without content", "open\n", 1, ErrMissingContent},
		{"navigate without content", "# c\nnavigate   \n", 2, ErrMissingContent},
		{"back with content", "back now\n", 1, ErrUnexpectedContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	steps, err := Parse(strings.NewReader("open A\nnavigate B\nnavigate C\nback\nback\nback\n"))
	require.NoError(t, err)

	c := modal.New[any]()
	var got []modal.State[any]
	defer c.Subscribe(func(s modal.State[any]) { got = append(got, s) })()

	Run(c, steps, Identity)

	ids := make([]int, len(got))
	for i, s := range got {
		ids[i] = s.ActiveID()
	}
	assert.Equal(t, []int{0, 1, 2, 1, 0, -1}, ids)
	assert.False(t, got[len(got)-1].IsOpen)
}

func TestApply_ConvertsContent(t *testing.T) {
	c := modal.New[string]()
	toString := func(v any) string { return strings.ToUpper(v.(string)) }

	Apply(c, Step{Op: modal.OpOpen, Content: "a"}, toString)
	Apply(c, Step{Op: modal.OpHide}, toString)

	st := c.State()
	assert.False(t, st.IsOpen)
	assert.Equal(t, "A", st.ActiveView.Content)
}
