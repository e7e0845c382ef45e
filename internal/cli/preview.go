package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jmylchreest/oncolour/internal/colour"
)

// swatcher renders colour samples in true colour to a writer.
type swatcher struct {
	renderer *lipgloss.Renderer
}

func newSwatcher(w io.Writer) *swatcher {
	r := lipgloss.NewRenderer(w)
	// Previews are only requested explicitly or for terminals, so always emit colour.
	r.SetColorProfile(termenv.TrueColor)
	return &swatcher{renderer: r}
}

// render draws text in foreground on background. Colours that do not parse
// are left unstyled.
func (s *swatcher) render(background, foreground, text string) string {
	style := s.renderer.NewStyle().Padding(0, 1)
	if bg, err := colour.Parse(background); err == nil {
		style = style.Background(lipgloss.Color(bg.Hex()))
	}
	if fg, err := colour.Parse(foreground); err == nil {
		style = style.Foreground(lipgloss.Color(fg.Hex()))
	}
	return style.Render(text)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
