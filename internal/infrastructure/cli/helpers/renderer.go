package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rickhohler/cider-tool/internal/domain"
)

// Indent prefixes detail lines under a summary line.
const Indent = "    "

// Renderer draws severity markers, coloured when the output allows it.
type Renderer struct {
	out  io.Writer
	ok   lipgloss.Style
	warn lipgloss.Style
	fail lipgloss.Style
}

// NewRenderer builds a renderer for out honouring the configured colour mode.
func NewRenderer(out io.Writer, mode domain.ColorMode) *Renderer {
	r := lipgloss.NewRenderer(out)
	switch mode {
	case domain.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case domain.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	default:
		if !isTerminal(out) {
			r.SetColorProfile(termenv.Ascii)
		}
	}

	return &Renderer{
		out:  out,
		ok:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		warn: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Summary prints a top-level "[✓] text" line.
func (r *Renderer) Summary(status domain.ProbeStatus, text string) {
	fmt.Fprintf(r.out, "%s %s\n", r.marker(status), text)
}

// Detail prints an indented "✓ text" line.
func (r *Renderer) Detail(pass bool, text string) {
	dot := r.fail.Render("✗")
	if pass {
		dot = r.ok.Render("✓")
	}
	fmt.Fprintf(r.out, "%s%s %s\n", Indent, dot, text)
}

// Line prints plain text.
func (r *Renderer) Line(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *Renderer) marker(status domain.ProbeStatus) string {
	switch status {
	case domain.ProbeOK:
		return r.ok.Render("[✓]")
	case domain.ProbeWarn:
		return r.warn.Render("[!]")
	default:
		return r.fail.Render("[✗]")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
