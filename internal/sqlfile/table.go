package sqlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Extension is appended to the table name to form the output file name.
const Extension = ".sql.gz"

var (
	ErrColumnCount = errors.New("column count mismatch")
	ErrEmptyTable  = errors.New("table has no rows")
)

// Table is one INSERT statement: a target table, its columns and the row
// tuples to insert.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// Append adds a row. The number of values must match the columns.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%w: %s expects %d values, got %d", ErrColumnCount, t.Name, len(t.Columns), len(values))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) FileName() string {
	return t.Name + Extension
}

// Render writes the table as a single multi-row INSERT statement.
func Render(w io.Writer, t *Table, d Dialect) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTable, t.Name)
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.QuoteIdent(c)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "INSERT INTO %s (%s) VALUES\n", d.QuoteIdent(t.Name), strings.Join(cols, ", "))

	values := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: %s row %d has %d values", ErrColumnCount, t.Name, i+1, len(row))
		}
		for j, v := range row {
			values[j] = d.Literal(v)
		}
		bw.WriteString("(")
		bw.WriteString(strings.Join(values, ", "))
		if i < len(t.Rows)-1 {
			bw.WriteString("),\n")
		} else {
			bw.WriteString(");\n")
		}
	}

	return bw.Flush()
}

func RenderString(t *Table, d Dialect) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, t, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteFile renders t into <dir>/<table>.sql.gz and returns the path.
func WriteFile(dir string, t *Table, d Dialect) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, t.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	gz.Name = t.Name + ".sql"

	if err := Render(gz, t, d); err != nil {
		gz.Close()
		os.Remove(path)
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}

// ReadFile returns the decompressed contents of a .sql.gz file.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("%s is not a gzip file: %w", path, err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return string(data), nil
}

// ListFiles returns the .sql.gz files directly inside dir, sorted by name.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), Extension) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
