package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

type theme struct {
	Title lipgloss.Style
	Faint lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Card  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Faint: lipgloss.NewStyle().Faint(true),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// renderSummary writes a boxed per-type breakdown of a loaded model.
func renderSummary(w io.Writer, title string, s domain.Summary) {
	th := defaultTheme()

	var b strings.Builder
	b.WriteString(th.Title.Render(title))
	fmt.Fprintf(&b, "\nentities: %d  relationships: %d  errors: ", s.EntityCount, s.RelationshipCount)
	if s.ErrorCount == 0 {
		b.WriteString(th.OK.Render("0"))
	} else {
		b.WriteString(th.Fail.Render(fmt.Sprint(s.ErrorCount)))
	}

	section := func(name string, keys []string, count func(string) int) {
		if len(keys) == 0 {
			return
		}
		b.WriteString("\n\n" + th.Faint.Render(name))
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %-36s %d", k, count(k))
		}
	}
	section("entities", domain.SortedKeys(s.Entities), func(k string) int { return s.Entities[k] })
	section("relationships", domain.SortedKeys(s.Relationships), func(k string) int { return s.Relationships[k] })

	errKinds := domain.SortedKeys(s.Errors)
	kinds := make([]string, len(errKinds))
	for i, k := range errKinds {
		kinds[i] = string(k)
	}
	section("errors", kinds, func(k string) int { return s.Errors[domain.FailureKind(k)] })

	fmt.Fprintln(w, th.Card.Render(b.String()))
}

func renderErrors(w io.Writer, entries []domain.ErrorLogEntry) {
	th := defaultTheme()
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s[%d] %s: %s\n",
			th.Fail.Render("✗"), e.Section, e.Index, e.EntityType, e.Message)
	}
}

func okLine(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, defaultTheme().OK.Render("✓")+" "+fmt.Sprintf(format, args...))
}
