package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output renders command results.
type Output interface {
	// Report prints the single terminal message of an operation.
	Report(r domain.Report)
	// Info prints an informational line.
	Info(msg string)
	// Error prints an error that did not come from an operation report.
	Error(err error)
	// JSON prints v as JSON.
	JSON(v any) error
}

// NewOutput creates the Output for format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

// TTYOutput prints styled text.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a TTYOutput.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, styles: NewOutputStyles()}
}

// Report prints "✓ <Operation>: <message>" or "✗ <Operation>: <message>"
// followed by any detail lines and a suggested action for errors.
func (o *TTYOutput) Report(r domain.Report) {
	label := o.styles.Label.Render(Title(r.Operation.Label()) + ":")
	if r.OK() {
		_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓")+" "+label+" "+r.Message.Text)
	} else {
		_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗")+" "+label+" "+r.Message.Text)
	}
	if r.Detail != "" {
		for _, line := range strings.Split(r.Detail, "\n") {
			_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  "+line))
		}
	}
	if !r.OK() {
		o.suggest(r.Err)
	}
}

// Info prints msg.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// Error prints "✗ <message>" and a suggested action when one is known.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
	o.suggest(err)
}

func (o *TTYOutput) suggest(err error) {
	if _, action := svnerrors.Actionable(err); action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// JSONOutput prints one JSON object per message.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// jsonReport is a Report with its error category spelled out.
type jsonReport struct {
	domain.Report
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Report prints r as a JSON object.
func (o *JSONOutput) Report(r domain.Report) {
	out := jsonReport{Report: r}
	if r.Err != nil {
		out.Error, out.Suggestion = svnerrors.Actionable(r.Err)
	}
	//nolint:errchkjson // no error return per interface contract
	_ = encodeJSON(o.w, out)
}

// Info prints {"type":"info","message":...}.
func (o *JSONOutput) Info(msg string) {
	//nolint:errchkjson // no error return per interface contract
	_ = encodeJSON(o.w, map[string]string{"type": "info", "message": msg})
}

// Error prints {"type":"error","message":...,"suggestion":...}.
func (o *JSONOutput) Error(err error) {
	msg := map[string]string{"type": "error", "message": err.Error()}
	if _, action := svnerrors.Actionable(err); action != "" {
		msg["suggestion"] = action
	}
	//nolint:errchkjson // no error return per interface contract
	_ = encodeJSON(o.w, msg)
}

// JSON prints v as indented JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)
