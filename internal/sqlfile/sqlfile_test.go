package sqlfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"int", 42, "42"},
		{"string", "Calle Ficticia 123, 3ºA", "'Calle Ficticia 123, 3ºA'"},
		{"escaped quote", "O'Reilly's", "'O''Reilly''s'"},
		{"empty string", "", "''"},
		{"whole float", 21.0, "21.0"},
		{"fractional float", 123.45, "123.45"},
		{"decimal", decimal.RequireFromString("10.50"), "10.5"},
		{"bool", true, "1"},
		{"date", time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC), "'2025-03-07'"},
		{"zero date", time.Time{}, "'0000-00-00'"},
		{"nil date pointer", (*time.Time)(nil), "'0000-00-00'"},
		{"raw", Raw("CURRENT_DATE"), "CURRENT_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.value))
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`default`", MySQL.QuoteIdent("default"))
	assert.Equal(t, "`default`", SQLite.QuoteIdent("default"))
	assert.Equal(t, `"default"`, Postgres.QuoteIdent("default"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgresql")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("oracle")
	assert.Error(t, err)
}

func TestTableAppendRejectsWrongArity(t *testing.T) {
	table := NewTable("app_taxes", "id", "name")
	require.NoError(t, table.Append(1, "IVA 21%"))

	err := table.Append(2)
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.Equal(t, 1, table.Len())
}

func TestRender(t *testing.T) {
	table := NewTable("app_taxes", "id", "name", "value", "default")
	require.NoError(t, table.Append(1, "IVA 21%", 21.0, 1))
	require.NoError(t, table.Append(2, "Exento / No sujeto", 0.0, 0))

	got, err := RenderString(table, MySQL)
	require.NoError(t, err)

	want := "INSERT INTO `app_taxes` (`id`, `name`, `value`, `default`) VALUES\n" +
		"(1, 'IVA 21%', 21.0, 1),\n" +
		"(2, 'Exento / No sujeto', 0.0, 0);\n"
	assert.Equal(t, want, got)
}

func TestDialectLiteralZeroDate(t *testing.T) {
	day := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "'0000-00-00'", MySQL.Literal(time.Time{}))
	assert.Equal(t, "'0000-00-00'", SQLite.Literal(time.Time{}))
	assert.Equal(t, "NULL", Postgres.Literal(time.Time{}))
	assert.Equal(t, "NULL", Postgres.Literal((*time.Time)(nil)))
	assert.Equal(t, "'2025-03-07'", Postgres.Literal(day))
	assert.Equal(t, "'x'", Postgres.Literal("x"))
}

func TestRenderPostgresZeroDate(t *testing.T) {
	table := NewTable("app_employees", "id", "end_date")
	require.NoError(t, table.Append(1, time.Time{}))
	require.NoError(t, table.Append(2, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	got, err := RenderString(table, Postgres)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO \"app_employees\" (\"id\", \"end_date\") VALUES\n"+
		"(1, NULL),\n"+
		"(2, '2024-05-01');\n", got)
	assert.NotContains(t, got, ZeroDate)
}

func TestLoadableBy(t *testing.T) {
	table := NewTable("app_taxes", "id")
	require.NoError(t, table.Append(1))

	for _, d := range []Dialect{MySQL, SQLite, Postgres} {
		sql, err := RenderString(table, d)
		require.NoError(t, err)
		summary, err := Parse(sql)
		require.NoError(t, err)

		switch d {
		case Postgres:
			assert.Equal(t, byte('"'), summary.Quote)
			assert.True(t, summary.LoadableBy(Postgres))
			assert.True(t, summary.LoadableBy(SQLite))
			assert.False(t, summary.LoadableBy(MySQL))
		default:
			assert.Equal(t, byte('`'), summary.Quote)
			assert.True(t, summary.LoadableBy(MySQL))
			assert.True(t, summary.LoadableBy(SQLite))
			assert.False(t, summary.LoadableBy(Postgres))
		}
	}

	summary, err := Parse("INSERT INTO app_taxes VALUES (1);")
	require.NoError(t, err)
	assert.True(t, summary.LoadableBy(Postgres))
}

func TestRenderEmptyTable(t *testing.T) {
	_, err := RenderString(NewTable("app_empty", "id"), MySQL)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	table := NewTable("app_customers_types", "id", "active", "name", "description")
	require.NoError(t, table.Append(1, 1, "Client", "Default type for standard clients"))
	require.NoError(t, table.Append(2, 1, "Non-Profit", "It's a non-commercial entity"))

	path, err := WriteFile(dir, table, Postgres)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app_customers_types.sql.gz"), path)

	summary, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "app_customers_types", summary.Table)
	assert.Equal(t, []string{"id", "active", "name", "description"}, summary.Columns)
	assert.Equal(t, 2, summary.Rows)
	assert.True(t, summary.OK())

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestReadFileRejectsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.sql.gz")
	require.NoError(t, os.WriteFile(path, []byte("INSERT INTO t VALUES (1);"), 0644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Run("column mismatch is reported per row", func(t *testing.T) {
		summary, err := Parse("INSERT INTO app_x (id, name) VALUES\n(1, 'a'),\n(2),\n(3, 'c, with comma');")
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Rows)
		assert.Equal(t, []int{2}, summary.Mismatches)
		assert.False(t, summary.OK())
	})

	t.Run("no column list uses first tuple arity", func(t *testing.T) {
		summary, err := Parse("INSERT INTO app_invoices_taxes VALUES\n(1,1,1,'IVA 21%',21.0,100.0,21.0),\n(2,1,4,'Exempt',0.0,5.0,0.0);\n")
		require.NoError(t, err)
		assert.Len(t, summary.Columns, 7)
		assert.True(t, summary.OK())
	})

	t.Run("quotes inside strings", func(t *testing.T) {
		summary, err := Parse("INSERT INTO `t` (`a`) VALUES ('it''s (fine); really');")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Rows)
	})

	t.Run("syntax errors", func(t *testing.T) {
		for _, sql := range []string{
			"UPDATE t SET a = 1;",
			"INSERT INTO t (a) VALUES (1)",
			"INSERT INTO t (a) VALUES ('open);",
			"INSERT INTO t (a) VALUES (1); DELETE FROM t;",
			"INSERT INTO t (a) VALUES (,);",
		} {
			_, err := Parse(sql)
			assert.ErrorIs(t, err, ErrSyntax, sql)
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := "-- header\nINSERT INTO t (a) VALUES ('x;y');\nINSERT INTO u (b) VALUES (2);\n"
	stmts := SplitStatements(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "INSERT INTO t (a) VALUES ('x;y')", stmts[0])
	assert.Equal(t, "INSERT INTO u (b) VALUES (2)", stmts[1])
}
