package samples

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/fake"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newEnv(seed uint64, count int) *Env {
	return &Env{Faker: fake.New(seed, now), Count: count, Issuer: config.DefaultCompany()}
}

func TestRegistryIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range All() {
		assert.NotEmpty(t, g.Group, g.Name)
		for _, table := range g.Tables {
			assert.False(t, seen[table], "duplicate table %s", table)
			seen[table] = true
		}
	}
	assert.Equal(t, []string{"company", "crm", "hr", "purchases", "sales"}, Groups())
}

func TestLookup(t *testing.T) {
	g, err := Lookup("customers")
	require.NoError(t, err)
	assert.Equal(t, "app_customers", g.Name)

	g, err = Lookup("app_invoices_lines.sql.gz")
	require.NoError(t, err)
	assert.Equal(t, "app_invoices", g.Name)

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil, "")
	require.NoError(t, err)
	assert.Len(t, all, len(All()))

	hr, err := Select(nil, "hr")
	require.NoError(t, err)
	require.Len(t, hr, 3)
	for _, g := range hr {
		assert.Equal(t, "hr", g.Group)
	}

	picked, err := Select([]string{"taxes", "app_company", "taxes"}, "")
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "app_company", picked[0].Name)
	assert.Equal(t, "app_taxes", picked[1].Name)

	_, err = Select(nil, "finance")
	assert.Error(t, err)
}

func TestEveryGeneratorBuilds(t *testing.T) {
	for _, g := range All() {
		t.Run(g.Name, func(t *testing.T) {
			tables, err := g.Build(newEnv(3, 25))
			require.NoError(t, err)
			require.Len(t, tables, len(g.Tables))
			for i, table := range tables {
				assert.Equal(t, g.Tables[i], table.Name)
				assert.NotZero(t, table.Len())
				for _, row := range table.Rows {
					assert.Len(t, row, len(table.Columns))
				}
			}
		})
	}
}

func TestColumnCounts(t *testing.T) {
	want := map[string]int{
		"app_company":         17,
		"app_customers":       14,
		"app_leads":           16,
		"app_quotes":          11,
		"app_meetings":        7,
		"app_departments":     6,
		"app_employees":       18,
		"app_suppliers":       13,
		"app_purchase":        13,
		"app_payment_methods": 5,
		"app_taxes":           5,
		"app_products":        8,
		"app_workorders":      9,
		"app_invoices":        32,
		"app_invoices_lines":  10,
		"app_invoices_taxes":  7,
		"app_leads_status":    4,
	}
	for _, g := range All() {
		tables, err := g.Build(newEnv(1, 5))
		require.NoError(t, err)
		for _, table := range tables {
			if n, ok := want[table.Name]; ok {
				assert.Len(t, table.Columns, n, table.Name)
			}
		}
	}
}

func TestFixedTables(t *testing.T) {
	tables, err := paymentMethodsGenerator.Build(newEnv(0, 100))
	require.NoError(t, err)
	require.Len(t, tables[0].Rows, 12)
	defaults := 0
	for _, row := range tables[0].Rows {
		defaults += row[4].(int)
	}
	assert.Equal(t, 1, defaults)

	tables, err = taxesGenerator.Build(newEnv(0, 100))
	require.NoError(t, err)
	require.Len(t, tables[0].Rows, 4)
	assert.Equal(t, "IVA 21%", tables[0].Rows[0][1])
	assert.Equal(t, 1, tables[0].Rows[0][4])
}

func TestDepartmentsParentPrecedes(t *testing.T) {
	tables, err := departmentsGenerator.Build(newEnv(9, 50))
	require.NoError(t, err)
	for _, row := range tables[0].Rows {
		id, parent := row[0].(int), row[4].(int)
		assert.Less(t, parent, id)
		assert.GreaterOrEqual(t, parent, 0)
	}
}

func TestDepartmentsActiveVaries(t *testing.T) {
	tables, err := departmentsGenerator.Build(newEnv(9, 50))
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, row := range tables[0].Rows {
		active := row[1].(int)
		assert.Contains(t, []int{0, 1}, active)
		seen[active] = true
	}
	assert.Len(t, seen, 2)
}

func TestSupplierFields(t *testing.T) {
	tables, err := suppliersGenerator.Build(newEnv(5, 60))
	require.NoError(t, err)
	types := map[int]bool{}
	for _, row := range tables[0].Rows {
		typeID := row[12].(int)
		assert.GreaterOrEqual(t, typeID, 1)
		assert.LessOrEqual(t, typeID, 3)
		types[typeID] = true
		assert.NotEmpty(t, row[11].(string))
	}
	assert.Len(t, types, 3)
}

func TestQuoteInvariants(t *testing.T) {
	tables, err := quotesGenerator.Build(newEnv(13, 60))
	require.NoError(t, err)
	latest := now.AddDate(0, 0, 30)
	for _, row := range tables[0].Rows {
		subtotal := row[5].(decimal.Decimal)
		tax := row[6].(decimal.Decimal)
		total := row[7].(decimal.Decimal)
		assert.True(t, tax.Equal(subtotal.Mul(decimal.RequireFromString("0.21")).Round(2)), "tax %s for %s", tax, subtotal)
		assert.True(t, total.Equal(subtotal.Add(tax)), "total %s", total)

		date := row[1].(time.Time)
		validUntil := row[9].(time.Time)
		assert.False(t, validUntil.Before(date))
		assert.False(t, validUntil.After(latest))
	}
}

func TestWorkorderTotals(t *testing.T) {
	tables, err := workordersGenerator.Build(newEnv(17, 60))
	require.NoError(t, err)
	for _, row := range tables[0].Rows {
		hours := row[5].(decimal.Decimal)
		price := row[6].(decimal.Decimal)
		total := row[7].(decimal.Decimal)
		assert.True(t, total.Equal(hours.Mul(price).Round(2)), "total %s for %s x %s", total, hours, price)
		assert.True(t, hours.GreaterThanOrEqual(decimal.NewFromInt(1)))
		assert.True(t, hours.LessThanOrEqual(decimal.NewFromInt(8)))
	}
}

func TestPurchaseInvariants(t *testing.T) {
	tables, err := purchaseGenerator.Build(newEnv(11, 60))
	require.NoError(t, err)
	for _, row := range tables[0].Rows {
		total := row[7].(decimal.Decimal)
		paid := row[8].(decimal.Decimal)
		assert.True(t, paid.LessThanOrEqual(total))
		assert.True(t, paid.GreaterThanOrEqual(decimal.Zero))

		date := row[1].(time.Time)
		invoiceDate := row[10].(time.Time)
		paidDate := row[11].(time.Time)
		assert.False(t, invoiceDate.Before(date))
		assert.False(t, paidDate.Before(invoiceDate))
	}
}

func TestInvoiceTotalsAddUp(t *testing.T) {
	tables, err := invoicesGenerator.Build(newEnv(42, 40))
	require.NoError(t, err)
	invoices, lines, taxRows := tables[0], tables[1], tables[2]
	require.Equal(t, 40, invoices.Len())

	lineSums := map[int]decimal.Decimal{}
	for i, row := range lines.Rows {
		assert.Equal(t, i+1, row[0])
		id := row[1].(int)
		lineSums[id] = lineSums[id].Add(row[9].(decimal.Decimal))
	}

	taxSums := map[int]decimal.Decimal{}
	for i, row := range taxRows.Rows {
		assert.Equal(t, i+1, row[0])
		id := row[1].(int)
		taxSums[id] = taxSums[id].Add(row[6].(decimal.Decimal))
	}

	for _, row := range invoices.Rows {
		id := row[0].(int)
		subtotal := row[22].(decimal.Decimal)
		tax := row[23].(decimal.Decimal)
		total := row[24].(decimal.Decimal)
		paid := row[27].(decimal.Decimal)
		closed, isPaid := row[30].(int), row[31].(int)

		assert.True(t, lineSums[id].Round(2).Equal(subtotal), "invoice %d subtotal", id)
		assert.True(t, taxSums[id].Equal(tax), "invoice %d tax", id)
		assert.True(t, subtotal.Add(tax).Round(2).Equal(total), "invoice %d total", id)
		assert.Equal(t, invoiceNumber("P", id), row[1])

		if closed == 0 {
			assert.Equal(t, 0, isPaid)
			assert.Equal(t, "", row[3])
			assert.True(t, row[4].(time.Time).IsZero())
		} else {
			assert.Equal(t, invoiceNumber("F", id), row[3])
			assert.False(t, row[26].(time.Time).Before(row[4].(time.Time)))
		}
		if isPaid == 1 {
			assert.True(t, paid.Equal(total))
		} else {
			assert.True(t, paid.IsZero())
			assert.True(t, row[28].(time.Time).IsZero())
		}
	}
}

func TestRunWritesInspectableFiles(t *testing.T) {
	dir := t.TempDir()
	gens, err := Select(nil, "")
	require.NoError(t, err)

	results, err := Run(gens, dir, Options{Count: 10, Seed: 5, Now: now})
	require.NoError(t, err)
	assert.Len(t, results, len(TableNames()))

	for _, r := range results {
		assert.Equal(t, filepath.Join(dir, r.Table+sqlfile.Extension), r.Path)
		summary, err := sqlfile.Inspect(r.Path)
		require.NoError(t, err, r.Table)
		assert.True(t, summary.OK(), r.Table)
		assert.Equal(t, r.Table, summary.Table)
		assert.Equal(t, r.Rows, summary.Rows)
	}
}

func TestRunIsDeterministicPerTable(t *testing.T) {
	gens, err := Select([]string{"customers"}, "")
	require.NoError(t, err)
	all, err := Select(nil, "crm")
	require.NoError(t, err)

	one, two := t.TempDir(), t.TempDir()
	_, err = Run(gens, one, Options{Count: 15, Seed: 99, Now: now})
	require.NoError(t, err)
	_, err = Run(all, two, Options{Count: 15, Seed: 99, Now: now})
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(one, "app_customers.sql.gz"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(two, "app_customers.sql.gz"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
