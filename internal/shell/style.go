package shell

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"memfs/internal/fs"
)

// style wraps a lipgloss style that may be switched off.
type style struct {
	lip     lipgloss.Style
	enabled bool
}

func (s style) render(text string) string {
	if !s.enabled {
		return text
	}
	return s.lip.Render(text)
}

type styles struct {
	prompt style
	echo   style
	dir    style
	file   style
	info   style
	err    style
	verb   style
}

func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	mk := func(s lipgloss.Style) style {
		return style{lip: s, enabled: color}
	}
	return styles{
		prompt: mk(r.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))),
		echo:   mk(r.NewStyle().Foreground(lipgloss.Color("245"))),
		dir:    mk(r.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))),
		file:   mk(r.NewStyle().Foreground(lipgloss.Color("252"))),
		info:   mk(r.NewStyle().Foreground(lipgloss.Color("42"))),
		err:    mk(r.NewStyle().Foreground(lipgloss.Color("196"))),
		verb:   mk(r.NewStyle().Foreground(lipgloss.Color("39"))),
	}
}

func (s styles) entry(typ fs.Type) style {
	if typ == fs.TypeDirectory {
		return s.dir
	}
	return s.file
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled resolves a color mode ("auto", "always" or "never") for
// output written to out. In auto mode color is used only on a terminal and
// never when NO_COLOR is set.
func ColorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && IsTerminal(f)
}
