package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorError  = lipgloss.Color("#EF4444") // Red
	colorCode   = lipgloss.Color("#F59E0B") // Amber
	colorMuted  = lipgloss.Color("#6B7280") // Gray
	colorFile   = lipgloss.Color("#06B6D4") // Cyan
	colorOK     = lipgloss.Color("#10B981") // Emerald
	colorSource = lipgloss.Color("#F8FAFC") // Slate 50
)

type styles struct {
	file, kind, code, message, gutter, source, ok lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		file:    lipgloss.NewStyle().Foreground(colorFile),
		kind:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
		code:    lipgloss.NewStyle().Foreground(colorCode),
		message: lipgloss.NewStyle().Bold(true),
		gutter:  lipgloss.NewStyle().Foreground(colorMuted),
		source:  lipgloss.NewStyle().Foreground(colorSource),
		ok:      lipgloss.NewStyle().Foreground(colorOK).Bold(true),
	}
}

// Renderer prints diagnostics with the offending source line underneath.
type Renderer struct {
	Color bool
}

// Render writes items using a colored Renderer.
func Render(w io.Writer, filename, src string, items []Diagnostic) error {
	return Renderer{Color: true}.Render(w, filename, src, items)
}

func (r Renderer) Render(w io.Writer, filename, src string, items []Diagnostic) error {
	st := newStyles(r.Color)
	lines := strings.Split(src, "\n")
	for _, d := range items {
		header := fmt.Sprintf("%s %s %s %s",
			st.file.Render(fmt.Sprintf("%s:%d:", filename, d.Line)),
			st.kind.Render(d.Kind.String()+" error"),
			st.code.Render("["+d.Code+"]"),
			st.message.Render(d.Message),
		)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if d.Line < 1 || d.Line > len(lines) {
			continue
		}
		text := strings.TrimRight(lines[d.Line-1], "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		gutter := st.gutter.Render(fmt.Sprintf("%5d |", d.Line))
		if _, err := fmt.Fprintf(w, "%s %s\n", gutter, st.source.Render(text)); err != nil {
			return err
		}
	}
	return nil
}

// Summary is the closing line of a report.
func (r Renderer) Summary(errors, truncated int) string {
	st := newStyles(r.Color)
	switch {
	case errors == 0 && truncated == 0:
		return st.ok.Render("no errors")
	case truncated > 0:
		return st.kind.Render(fmt.Sprintf("%s (%d more not shown)", plural(errors+truncated), truncated))
	default:
		return st.kind.Render(plural(errors))
	}
}

// Summary renders the closing line with color.
func Summary(errors, truncated int) string { return Renderer{Color: true}.Summary(errors, truncated) }

func plural(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}
