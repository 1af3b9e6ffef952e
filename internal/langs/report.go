package langs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var csvHeader = []string{"group", "file", "origin", "original", "key", "status"}

const rowFormat = "%-10s %-20s %-10s %-40s %-40s %-30s\n"

// Print writes the report as an aligned table.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "# Translation review for language: %s", r.Lang)
	if r.LangName != "" {
		fmt.Fprintf(w, " (%s)", r.LangName)
	}
	fmt.Fprint(w, "\n\n")

	fmt.Fprintf(w, rowFormat, "group", "file", "origin", "original", "key", "status")
	dash := func(n int) string { return strings.Repeat("-", n) }
	fmt.Fprintf(w, rowFormat, dash(10), dash(20), dash(10), dash(40), dash(40), dash(30))
	for _, row := range r.Rows {
		fmt.Fprintf(w, rowFormat, row.Group, row.File, row.Origin, row.Original, row.Key, row.Status)
	}
}

// Counts returns how many rows carry each status.
func (r *Report) Counts() map[string]int {
	counts := map[string]int{}
	for _, row := range r.Rows {
		counts[row.Status]++
	}
	return counts
}

// WriteCSV writes the rows with a header line.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.Write([]string{row.Group, row.File, row.Origin, row.Original, row.Key, row.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *Report) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := r.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return f.Close()
}
