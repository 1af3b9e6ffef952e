package samples

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/shopspring/decimal"
)

var suppliersGenerator = Generator{
	Name:   "app_suppliers",
	Group:  "purchases",
	Tables: []string{"app_suppliers"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_suppliers",
			"id", "active", "name", "address", "city", "zip", "country",
			"code", "email", "phone", "website", "notes", "type_id")
		for i := 1; i <= env.Count; i++ {
			err := t.Append(i,
				env.IntRange(0, 1),
				env.Company(),
				env.StreetAddress(),
				env.City(),
				env.Postcode(),
				env.Country(),
				env.CIF(),
				env.CompanyEmail(),
				env.Phone(),
				env.Website(),
				env.CatchPhrase(),
				env.IntRange(1, 3),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var purchaseGenerator = Generator{
	Name:   "app_purchase",
	Group:  "purchases",
	Tables: []string{"app_purchase"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_purchase",
			"id", "date", "supplier_id", "code", "description",
			"subtotal", "tax", "total", "paid", "status_id",
			"invoice_date", "paid_date", "notes")
		for i := 1; i <= env.Count; i++ {
			date := env.DateBetween(env.MonthsAgo(6), env.DaysAgo(1))
			subtotal := env.Money(100, 3000)
			tax := subtotal.Mul(vatRate).Round(2)
			total := subtotal.Add(tax).Round(2)
			invoiceDate := env.DateBetween(date, env.DaysAgo(-10))

			err := t.Append(i,
				date,
				env.IntRange(1, env.Count),
				fmt.Sprintf("PO-%04d", i),
				env.Sentence(6),
				subtotal,
				tax,
				total,
				partialPayment(env, total),
				env.IntRange(1, 4),
				invoiceDate,
				env.DateBetween(invoiceDate, env.DaysAgo(-30)),
				env.Text(60),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

// partialPayment picks an amount in [0, total].
func partialPayment(env *Env, total decimal.Decimal) decimal.Decimal {
	paid := decimal.NewFromFloat(env.Float64()).Mul(total).Round(2)
	if paid.GreaterThan(total) {
		return total
	}
	return paid
}
