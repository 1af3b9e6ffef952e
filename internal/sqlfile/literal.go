package sqlfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ZeroDate is what the application stores for "no date".
const ZeroDate = "0000-00-00"

// Raw is written into the statement without quoting or escaping.
type Raw string

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s", name)
	}
}

// QuoteIdent quotes a table or column name. Quoting is unconditional because
// several tables use reserved words such as `default` as column names.
func (d Dialect) QuoteIdent(name string) string {
	if d == Postgres {
		return pq.QuoteIdentifier(name)
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Escape doubles single quotes so s can sit inside a '...' literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func Quote(s string) string {
	return "'" + Escape(s) + "'"
}

// Literal renders v as a SQL value.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case Raw:
		return string(val)
	case string:
		return Quote(val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return FormatFloat(val)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		if val.IsZero() {
			return Quote(ZeroDate)
		}
		return Quote(val.Format(time.DateOnly))
	case *time.Time:
		if val == nil {
			return Quote(ZeroDate)
		}
		return Literal(*val)
	case fmt.Stringer:
		return Quote(val.String())
	default:
		return Quote(fmt.Sprint(val))
	}
}

// Literal renders v for the dialect. PostgreSQL rejects the zero date, so
// missing dates become NULL there.
func (d Dialect) Literal(v any) string {
	if d == Postgres {
		switch val := v.(type) {
		case time.Time:
			if val.IsZero() {
				return "NULL"
			}
		case *time.Time:
			if val == nil || val.IsZero() {
				return "NULL"
			}
		}
	}
	return Literal(v)
}

// FormatFloat prints the shortest representation of f, keeping a decimal
// point so float columns stay visibly fractional (21 -> 21.0).
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
