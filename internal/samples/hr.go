package samples

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
)

// maxDepartments caps department_id so employees only reference departments
// that a default run creates.
const maxDepartments = 20

var departmentsGenerator = Generator{
	Name:   "app_departments",
	Group:  "hr",
	Tables: []string{"app_departments"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_departments", "id", "active", "name", "code", "parent_id", "notes")
		for i := 1; i <= env.Count; i++ {
			parent := 0
			if i > 1 {
				parent = env.IntRange(0, i-1)
			}

			err := t.Append(i,
				env.IntRange(0, 1),
				env.Job(),
				fmt.Sprintf("DPT-%04d", i),
				parent,
				env.Sentence(6),
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}

var employeesGenerator = Generator{
	Name:   "app_employees",
	Group:  "hr",
	Tables: []string{"app_employees"},
	Build: func(env *Env) ([]*sqlfile.Table, error) {
		t := sqlfile.NewTable("app_employees",
			"id", "active", "name", "address", "city", "province", "zip", "country",
			"code", "email", "phone", "department_id", "job_title",
			"start_date", "end_date", "type_id", "notes", "user_id")
		for i := 1; i <= env.Count; i++ {
			start := env.DateBetween(env.YearsAgo(5), env.YearsAgo(1))

			// Nine in ten employees are still with the company.
			var end time.Time
			if env.Float64() <= 0.1 {
				end = env.DateBetween(start, env.Today())
			}

			err := t.Append(i,
				env.IntRange(0, 1),
				env.Name(),
				env.StreetAddress(),
				env.City(),
				env.State(),
				env.Postcode(),
				env.Country(),
				env.NIF(),
				env.Email(),
				env.Phone(),
				env.IntRange(1, min(maxDepartments, env.Count)),
				env.Job(),
				start,
				end,
				env.IntRange(1, 3),
				env.Sentence(8),
				1,
			)
			if err != nil {
				return nil, err
			}
		}
		return []*sqlfile.Table{t}, nil
	},
}
