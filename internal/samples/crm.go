package samples

import (
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/saltseed/internal/fake"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/shopspring/decimal"
)

// vatRate is the general Spanish VAT applied to quotes and purchases.
var vatRate = decimal.RequireFromString("0.21")

var leadSources = []string{"Web", "Referral", "Event", "Email", "Phone"}

var customersGenerator = Generator{
	Name:   "app_customers",
	Group:  "crm",
	Tables: []string{"app_customers"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_customers",
			"id", "active", "name", "address", "city", "province", "zip", "country",
			"code", "email", "phone", "website", "notes", "type_id")
		for i := 1; i <= env.Count; i++ {
			err := t.Append(i,
				env.IntRange(0, 1),
				env.Company(),
				env.StreetAddress(),
				env.City(),
				env.State(),
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

var leadsGenerator = Generator{
	Name:   "app_leads",
	Group:  "crm",
	Tables: []string{"app_leads"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_leads",
			"id", "active", "name", "address", "city", "zip", "country", "code",
			"email", "phone", "website", "notes", "contact", "source", "status_id", "assigned_to")
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
				env.Sentence(10),
				env.Name(),
				env.Choice(leadSources),
				env.IntRange(1, 4),
				env.IntRange(1, 5),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var quotesGenerator = Generator{
	Name:   "app_quotes",
	Group:  "crm",
	Tables: []string{"app_quotes"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_quotes",
			"id", "date", "customer_id", "title", "description",
			"subtotal", "tax", "total", "status_id", "valid_until", "created_by")
		for i := 1; i <= env.Count; i++ {
			date := env.DateBetween(env.MonthsAgo(6), env.Today())
			subtotal := env.Money(100, 3000)
			tax := subtotal.Mul(vatRate).Round(2)

			err := t.Append(i,
				date,
				env.IntRange(1, env.Count),
				env.CatchPhrase(),
				env.Text(100),
				subtotal,
				tax,
				subtotal.Add(tax).Round(2),
				env.IntRange(1, 4),
				env.DateBetween(date, env.DaysAgo(-30)),
				env.IntRange(1, 5),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var meetingsGenerator = Generator{
	Name:   "app_meetings",
	Group:  "crm",
	Tables: []string{"app_meetings"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_meetings",
			"id", "date", "title", "participants_ids", "related_to", "content", "created_by")
		for i := 1; i <= env.Count; i++ {
			date := env.DateBetween(env.YearsAgo(1), env.Today())
			participants := make([]string, env.IntRange(1, 4))
			for j := range participants {
				participants[j] = strconv.Itoa(env.IntRange(1, 50))
			}

			err := t.Append(i,
				date,
				fake.Capitalize(env.BS()),
				strings.Join(participants, ","),
				env.IntRange(1, env.Count),
				env.Paragraph(3),
				env.IntRange(1, 5),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}
