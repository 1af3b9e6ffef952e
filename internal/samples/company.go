package samples

import "github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"

var companyGenerator = Generator{
	Name:   "app_company",
	Group:  "company",
	Tables: []string{"app_company"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		c := env.Issuer
		t := sqlfile.NewTable("app_company",
			"id", "active", "name", "code", "address", "city", "province", "zip", "country",
			"phone", "email", "website", "iban", "swift",
			"fiscal_regime", "activity_code", "notes")
		err := t.Append(1, 1, c.Name, c.Code, c.Address, c.City, c.Province, c.Zip, c.Country,
			c.Phone, c.Email, c.Website, c.IBAN, c.Swift,
			c.FiscalRegime, c.ActivityCode, c.Notes)
		if err != nil {
			return nil, err
		}
		return []*sqlfile.Table{t}, nil
	},
}
