package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// Renderer writes command results as tables or JSON.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer creates a renderer for format ("text" or "json").
func NewRenderer(w io.Writer, format string) *Renderer {
	return &Renderer{w: w, format: format}
}

// JSON reports whether results are rendered as JSON.
func (r *Renderer) JSON() bool {
	return r.format == "json"
}

// Writer returns the underlying writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Encode writes v as indented JSON.
func (r *Renderer) Encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a table with header. Headers are bold only on a terminal.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	if r.isTerminal() {
		t.Style().Color.Header = text.Colors{text.Bold}
	}
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

func (r *Renderer) isTerminal() bool {
	f, ok := r.w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}
