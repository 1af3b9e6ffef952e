// Package samples holds one generator per application table. Every
// generator is an independent procedure: it synthesizes its rows and
// returns them as sqlfile tables, ready to be written as <table>.sql.gz.
package samples

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/fake"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"go.uber.org/zap"
)

var ErrUnknownTable = errors.New("unknown table")

// Env is what a generator sees while building its rows.
type Env struct {
	*fake.Faker
	// Count is the number of rows for count-driven tables and the upper
	// bound for ids that reference them.
	Count int
	// Issuer is the company that owns the data set.
	Issuer config.Company
}

type Generator struct {
	Name   string
	Group  string
	Tables []string
	Build  func(env *Env) ([]*sqlfile.Table, error)
}

type Options struct {
	Count   int
	Seed    uint64
	Now     time.Time
	Company config.Company
	Dialect sqlfile.Dialect
	Logger  *zap.Logger
}

type Result struct {
	Generator string
	Table     string
	Path      string
	Rows      int
}

// All returns every generator, grouped by application.
func All() []Generator {
	return []Generator{
		companyGenerator,

		catalogGenerator("crm", "app_customers_types", customersTypes),
		catalogGenerator("crm", "app_leads_status", leadsStatus),
		catalogGenerator("crm", "app_quotes_status", quotesStatus),
		customersGenerator,
		leadsGenerator,
		quotesGenerator,
		meetingsGenerator,

		catalogGenerator("hr", "app_employees_types", employeesTypes),
		departmentsGenerator,
		employeesGenerator,

		catalogGenerator("purchases", "app_purchase_status", purchaseStatus),
		catalogGenerator("purchases", "app_suppliers_types", suppliersTypes),
		suppliersGenerator,
		purchaseGenerator,

		catalogGenerator("sales", "app_products_categories", productsCategories),
		catalogGenerator("sales", "app_products_types", productsTypes),
		catalogGenerator("sales", "app_invoices_status", invoicesStatus),
		paymentMethodsGenerator,
		taxesGenerator,
		productsGenerator,
		workordersGenerator,
		invoicesGenerator,
	}
}

// Groups lists the application groups in registry order.
func Groups() []string {
	var groups []string
	seen := map[string]bool{}
	for _, g := range All() {
		if !seen[g.Group] {
			seen[g.Group] = true
			groups = append(groups, g.Group)
		}
	}
	return groups
}

// Lookup finds the generator producing table. The "app_" prefix is
// optional.
func Lookup(table string) (Generator, error) {
	name := normalize(table)
	for _, g := range All() {
		if g.Name == name {
			return g, nil
		}
		for _, t := range g.Tables {
			if t == name {
				return g, nil
			}
		}
	}
	return Generator{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

// Select resolves table names and an optional group into generators,
// keeping registry order and dropping duplicates. No names and no group
// selects everything.
func Select(names []string, group string) ([]Generator, error) {
	wanted := map[string]bool{}
	for _, n := range names {
		g, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		wanted[g.Name] = true
	}

	if group != "" && !contains(Groups(), group) {
		return nil, fmt.Errorf("unknown group: %s (available: %s)", group, strings.Join(Groups(), ", "))
	}

	var selected []Generator
	for _, g := range All() {
		if len(wanted) > 0 && !wanted[g.Name] {
			continue
		}
		if group != "" && g.Group != group {
			continue
		}
		selected = append(selected, g)
	}
	return selected, nil
}

// Run builds every generator and writes one file per produced table into
// dir.
func Run(gens []Generator, dir string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Count <= 0 {
		opts.Count = 100
	}
	if opts.Dialect == "" {
		opts.Dialect = sqlfile.MySQL
	}
	if opts.Company.Name == "" {
		opts.Company = config.DefaultCompany()
	}

	var results []Result
	for _, g := range gens {
		env := &Env{
			Faker:  fake.New(seedFor(opts.Seed, g.Name), opts.Now),
			Count:  opts.Count,
			Issuer: opts.Company,
		}

		tables, err := g.Build(env)
		if err != nil {
			return results, fmt.Errorf("failed to build %s: %w", g.Name, err)
		}

		for _, t := range tables {
			path, err := sqlfile.WriteFile(dir, t, opts.Dialect)
			if err != nil {
				return results, fmt.Errorf("failed to write %s: %w", t.Name, err)
			}
			logger.Debug("wrote sample file",
				zap.String("generator", g.Name),
				zap.String("table", t.Name),
				zap.String("path", path),
				zap.Int("rows", t.Len()))
			results = append(results, Result{Generator: g.Name, Table: t.Name, Path: path, Rows: t.Len()})
		}
	}
	return results, nil
}

// seedFor derives a per-table seed so a table's rows do not depend on
// which other tables were generated in the same run.
func seedFor(seed uint64, name string) uint64 {
	if seed == 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ h.Sum64()
}

func normalize(table string) string {
	table = strings.TrimSuffix(strings.TrimSpace(table), sqlfile.Extension)
	if !strings.HasPrefix(table, "app_") {
		table = "app_" + table
	}
	return table
}

// TableNames lists every table the registry can produce, sorted.
func TableNames() []string {
	var names []string
	for _, g := range All() {
		names = append(names, g.Tables...)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
