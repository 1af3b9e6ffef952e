package samples

import (
	"fmt"
	"math"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/shopspring/decimal"
)

const invoiceYear = 2025

var (
	discounts       = []int{0, 5, 10, 15, 20, 25}
	discountWeights = []int{70, 10, 8, 6, 4, 2}
	dueDays         = []int{15, 30, 45}
	hundred         = decimal.NewFromInt(100)
)

// taxBucket accumulates the taxable base of every line sharing a tax.
type taxBucket struct {
	tax  tax
	base decimal.Decimal
}

// invoiceTables holds the three tables that share the invoice sequences.
type invoiceTables struct {
	invoices *sqlfile.Table
	lines    *sqlfile.Table
	taxes    *sqlfile.Table
}

var invoicesGenerator = Generator{
	Name:   "app_invoices",
	Group:  "sales",
	Tables: []string{"app_invoices", "app_invoices_lines", "app_invoices_taxes"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		out := invoiceTables{
			invoices: sqlfile.NewTable("app_invoices",
				"id", "proforma_code", "proforma_date", "invoice_code", "invoice_date",
				"company_id", "company_name", "company_address", "company_city",
				"company_province", "company_zip", "company_country", "company_code",
				"customer_id", "customer_name", "customer_address", "customer_city",
				"customer_province", "customer_zip", "customer_country", "customer_code",
				"description", "subtotal", "tax", "total",
				"payment_method_id", "due_date", "paid", "paid_date",
				"status_id", "is_closed", "is_paid"),
			lines: sqlfile.NewTable("app_invoices_lines",
				"id", "invoice_id", "product_id", "description",
				"quantity", "price", "discount", "tax_id", "tax_value", "total"),
			taxes: sqlfile.NewTable("app_invoices_taxes",
				"id", "invoice_id", "tax_id", "tax_name", "tax_value", "base", "tax"),
		}

		for i := 1; i <= env.Count; i++ {
			if err := buildInvoice(env, i, &out); err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{out.invoices, out.lines, out.taxes}, nil
	},
}

func buildInvoice(env *Env, id int, out *invoiceTables) error {
	closed := env.IntRange(0, 1)
	paidFlag := 0
	if closed == 1 {
		paidFlag = env.IntRange(0, 1)
	}

	proformaDate := env.DateBetween(env.DaysAgo(60), env.Today())
	var invoiceCode string
	var invoiceDate, dueDate, paidDate time.Time
	if closed == 1 {
		invoiceCode = invoiceNumber("F", id)
		invoiceDate = env.DateBetween(proformaDate, env.Today())
		dueDate = invoiceDate.AddDate(0, 0, dueDays[env.IntRange(0, len(dueDays)-1)])
		if paidFlag == 1 {
			paidDate = env.DateBetween(invoiceDate, env.Today())
		}
	}

	c := env.Issuer
	customerName := env.Company()
	customerAddress := env.Address()
	customerCity := env.City()
	customerProvince := env.State()
	customerZip := env.Postcode()
	customerCountry := env.Country()
	customerCode := env.CIF()
	customerID := env.IntRange(1, env.Count)
	description := env.Paragraph(3)

	subtotal := decimal.Zero
	var buckets []*taxBucket
	byTax := map[int]*taxBucket{}

	// Quadratic bias keeps most invoices short while allowing up to 50 lines.
	lines := int(math.Pow(env.Float64(), 2)*49) + 1
	for range lines {
		quantity := env.Money(1, 10)
		price := env.Money(10, 200)
		discount := env.WeightedChoice(discounts, discountWeights)
		tx := taxes[env.IntRange(0, len(taxes)-1)]

		factor := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
		base := quantity.Mul(price).Mul(factor).Round(2)

		err := out.lines.Append(out.lines.Len()+1,
			id,
			0,
			env.BS(),
			quantity,
			price,
			discount,
			tx.id,
			tx.value,
			base,
		)
		if err != nil {
			return err
		}
		subtotal = subtotal.Add(base)

		b, ok := byTax[tx.id]
		if !ok {
			b = &taxBucket{tax: tx, base: decimal.Zero}
			byTax[tx.id] = b
			buckets = append(buckets, b)
		}
		b.base = b.base.Add(base)
	}

	totalTax := decimal.Zero
	for _, b := range buckets {
		base := b.base.Round(2)
		amount := base.Mul(taxRate(b.tax)).Div(hundred).Round(2)
		totalTax = totalTax.Add(amount)

		err := out.taxes.Append(out.taxes.Len()+1, id, b.tax.id, b.tax.name, b.tax.value, base, amount)
		if err != nil {
			return err
		}
	}

	total := subtotal.Add(totalTax).Round(2)
	paid := decimal.Zero
	if paidFlag == 1 {
		paid = total
	}

	return out.invoices.Append(id,
		invoiceNumber("P", id),
		proformaDate,
		invoiceCode,
		invoiceDate,
		1, c.Name, c.Address, c.City, c.Province, c.Zip, c.Country, c.Code,
		customerID, customerName, customerAddress, customerCity,
		customerProvince, customerZip, customerCountry, customerCode,
		description,
		subtotal.Round(2),
		totalTax,
		total,
		env.IntRange(1, len(paymentMethods)),
		dueDate,
		paid,
		paidDate,
		env.IntRange(1, 5),
		closed,
		paidFlag,
	)
}

func invoiceNumber(prefix string, n int) string {
	return fmt.Sprintf("%s%d-%04d", prefix, invoiceYear, n)
}
