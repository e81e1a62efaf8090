// Package script parses and runs line-oriented modal operation scripts:
//
//	# comment
//	open Welcome
//	navigate {"title":"Details","body":"..."}
//	back
//	hide
//	show
//	close
//
// Content is the rest of the line after the operation. It is decoded as JSON
// when it parses as JSON (objects, arrays, numbers, booleans, quoted strings,
// null); otherwise the raw text is the content.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"dialogo/internal/jsonutil"
	"dialogo/pkg/modal"
)

var (
	// ErrUnknownOp is returned for an operation name that is not recognised.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrMissingContent is returned when open or navigate has no content.
	ErrMissingContent = errors.New("missing content")
	// ErrUnexpectedContent is returned when back/close/hide/show carry content.
	ErrUnexpectedContent = errors.New("unexpected content")
)

// Step is one parsed operation.
type Step struct {
	Line    int // 1-based source line
	Op      modal.Op
	Content any // Only set for open and navigate
}

// ParseError reports the line a script failed on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// takesContent lists the operations and whether they need content.
var takesContent = map[modal.Op]bool{
	modal.OpOpen:     true,
	modal.OpNavigate: true,
	modal.OpBack:     false,
	modal.OpClose:    false,
	modal.OpHide:     false,
	modal.OpShow:     false,
}

// Parse reads a whole script. It stops at the first malformed line.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		step, ok, err := ParseLine(lineNo, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			steps = append(steps, step)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// ParseLine parses one line. ok is false for blank lines and comments.
func ParseLine(lineNo int, text string) (Step, bool, error) {
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, "#") {
		return Step{}, false, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	op := modal.Op(strings.ToLower(name))
	rest = strings.TrimSpace(rest)

	needsContent, known := takesContent[op]
	switch {
	case !known:
		return Step{}, false, &ParseError{Line: lineNo, Text: text, Err: ErrUnknownOp}
	case needsContent && rest == "":
		return Step{}, false, &ParseError{Line: lineNo, Text: text, Err: ErrMissingContent}
	case !needsContent && rest != "":
		return Step{}, false, &ParseError{Line: lineNo, Text: text, Err: ErrUnexpectedContent}
	}

	step := Step{Line: lineNo, Op: op}
	if needsContent {
		step.Content = ParseContent(rest)
	}
	return step, true, nil
}

// ParseContent decodes s as JSON if it is valid JSON, otherwise returns s.
func ParseContent(s string) any {
	var v any
	if jsonutil.UnmarshalLineSafe(s, &v) {
		return v
	}
	return s
}

// Apply performs one step on c. convert maps the parsed content to the
// controller's content type; it is not called for steps without content.
func Apply[C any](c *modal.Controller[C], step Step, convert func(any) C) {
	switch step.Op {
	case modal.OpOpen:
		c.Open(convert(step.Content))
	case modal.OpNavigate:
		c.Navigate(convert(step.Content))
	case modal.OpBack:
		c.Back()
	case modal.OpClose:
		c.Close()
	case modal.OpHide:
		c.Hide()
	case modal.OpShow:
		c.Show()
	}
}

// Run applies every step in order.
func Run[C any](c *modal.Controller[C], steps []Step, convert func(any) C) {
	for _, s := range steps {
		Apply(c, s, convert)
	}
}

// Identity is the convert func for controllers holding raw parsed content.
func Identity(v any) any {
	return v
}
