package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/msgpack-codegen/catalog"
)

var (
	summaryHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	summaryLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(18)

	summaryCount = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Align(lipgloss.Right).
			Width(6)
)

type summaryRow struct {
	label string
	count int
}

func summaryRows(s catalog.Summary) []summaryRow {
	return []summaryRow{
		{"objects", s.Objects},
		{"enums", s.Enums},
		{"generics", s.Generics},
		{"unions", s.Unions},
		{"unbound generics", s.UnboundGenerics},
		{"total", s.Total()},
	}
}

// renderSummary formats descriptor counts, styled for terminals and as
// plain key=value text otherwise.
func renderSummary(s catalog.Summary, styled bool) string {
	if !styled {
		return s.String() + " total=" + strconv.Itoa(s.Total())
	}
	var b strings.Builder
	b.WriteString(summaryHeader.Render("Catalogue"))
	b.WriteString("\n")
	for _, r := range summaryRows(s) {
		b.WriteString(summaryLabel.Render(r.label))
		b.WriteString(summaryCount.Render(fmt.Sprint(r.count)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
