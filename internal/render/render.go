// Package render prints entry previews and registry listings. Purely
// presentational; nothing here touches the registry files.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Preview prints the serialized form of an entry under a header line, so the
// operator can inspect exactly what will be written before confirming.
func Preview(w io.Writer, header, serialized string, styled bool) {
	if !styled {
		fmt.Fprintf(w, "\n%s\n%s\n", header, serialized)
		return
	}
	fmt.Fprintf(w, "\n%s\n%s\n", headerStyle.Render(header), bodyStyle.Render(serialized))
}

// Table prints a titled table with the given columns and rows.
func Table(w io.Writer, title string, columns []string, rows [][]string, styled bool) error {
	if styled {
		title = titleStyle.Render(title)
	}
	fmt.Fprintln(w, title)
	table := tablewriter.NewWriter(w)
	table.Header(columns)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
