package samples

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/shopspring/decimal"
)

var paymentMethods = []entry{
	{"Cash", "Payment made in physical currency."},
	{"Credit Card", "Payment made using a credit card."},
	{"Debit Card", "Payment made using a debit card linked to a bank account."},
	{"Bank Transfer", "Payment made via wire transfer or electronic banking."},
	{"PayPal", "Payment made using a PayPal account."},
	{"Cheque", "Payment made using a paper cheque."},
	{"Mobile Payment", "Payment made using a mobile wallet or app."},
	{"Cryptocurrency", "Payment made using Bitcoin or other cryptocurrencies."},
	{"Direct Debit", "Payment directly withdrawn from a bank account."},
	{"Prepaid", "Payment made using prepaid balance or voucher."},
	{"Gift Card", "Payment using a store-issued gift card."},
	{"Other", "Other form of payment not listed above."},
}

const defaultPaymentMethod = "Bank Transfer"

type tax struct {
	id    int
	name  string
	value float64
}

// taxes is shared by app_taxes and the invoice generator so invoice lines
// always reference existing tax ids.
var taxes = []tax{
	{1, "IVA 21%", 21.00},
	{2, "IVA 10%", 10.00},
	{3, "IVA 4%", 4.00},
	{4, "Exento / No sujeto", 0.00},
}

var paymentMethodsGenerator = Generator{
	Name:   "app_payment_methods",
	Group:  "sales",
	Tables: []string{"app_payment_methods"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_payment_methods", "id", "name", "description", "active", "default")
		for i, m := range paymentMethods {
			isDefault := 0
			if m.name == defaultPaymentMethod {
				isDefault = 1
			}
			if err := t.Append(i+1, m.name, m.description, 1, isDefault); err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var taxesGenerator = Generator{
	Name:   "app_taxes",
	Group:  "sales",
	Tables: []string{"app_taxes"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_taxes", "id", "name", "value", "active", "default")
		for i, tx := range taxes {
			isDefault := 0
			if i == 0 {
				isDefault = 1
			}
			if err := t.Append(tx.id, tx.name, tx.value, 1, isDefault); err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var productsGenerator = Generator{
	Name:   "app_products",
	Group:  "sales",
	Tables: []string{"app_products"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_products",
			"id", "name", "code", "description", "price", "tax_id", "type_id", "active")
		for i := 1; i <= env.Count; i++ {
			err := t.Append(i,
				env.CatchPhrase(),
				fmt.Sprintf("PRD-%04d", i),
				env.Text(100),
				env.Money(10, 500),
				env.IntRange(1, len(taxes)),
				env.IntRange(1, 3),
				1,
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var workordersGenerator = Generator{
	Name:   "app_workorders",
	Group:  "sales",
	Tables: []string{"app_workorders"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_workorders",
			"id", "date", "worker_id", "client_id", "description", "hours", "price", "total", "invoice_id")
		for i := 1; i <= env.Count; i++ {
			hours := env.Money(1, 8)
			price := env.Money(20, 100)

			err := t.Append(i,
				env.DateBetween(env.MonthsAgo(6), env.Today()),
				env.IntRange(1, 50),
				env.IntRange(1, env.Count),
				env.Sentence(8),
				hours,
				price,
				hours.Mul(price).Round(2),
				env.IntRange(1, env.Count),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

func taxRate(tx tax) decimal.Decimal {
	return decimal.NewFromFloat(tx.value)
}
