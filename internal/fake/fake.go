// Package fake wraps gofakeit with the helpers the sample generators need:
// business-flavoured text, bounded dates relative to a fixed "today" and
// Spanish tax identifiers.
package fake

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type Faker struct {
	f   *gofakeit.Faker
	now time.Time
}

// New returns a Faker seeded with seed. A zero seed picks a random one.
// now anchors every relative date; the zero value means time.Now().
func New(seed uint64, now time.Time) *Faker {
	if now.IsZero() {
		now = time.Now()
	}
	return &Faker{
		f:   gofakeit.New(seed),
		now: Day(now),
	}
}

// Today is the day relative dates are computed from.
func (g *Faker) Today() time.Time {
	return g.now
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (g *Faker) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return g.f.IntRange(min, max)
}

func (g *Faker) Float64() float64 {
	return g.f.Float64()
}

func (g *Faker) Bool() bool {
	return g.f.Bool()
}

// Uniform returns a value in [min, max] rounded to two decimals.
func (g *Faker) Uniform(min, max float64) float64 {
	return Round2(g.f.Float64Range(min, max))
}

// Money is Uniform as a decimal.
func (g *Faker) Money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(g.f.Float64Range(min, max)).Round(2)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (g *Faker) Choice(items []string) string {
	return g.f.RandomString(items)
}

// WeightedChoice picks one of values with probability proportional to the
// matching weight.
func (g *Faker) WeightedChoice(values, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || len(values) == 0 {
		return 0
	}
	r := g.IntRange(1, total)
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// DateBetween returns a calendar day in [from, to].
func (g *Faker) DateBetween(from, to time.Time) time.Time {
	from, to = Day(from), Day(to)
	if !to.After(from) {
		return from
	}
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, g.IntRange(0, days))
}

// DaysAgo is today shifted back n days. Negative n moves forward.
func (g *Faker) DaysAgo(n int) time.Time {
	return g.now.AddDate(0, 0, -n)
}

func (g *Faker) MonthsAgo(n int) time.Time {
	return g.now.AddDate(0, -n, 0)
}

func (g *Faker) YearsAgo(n int) time.Time {
	return g.now.AddDate(-n, 0, 0)
}

func (g *Faker) Name() string {
	return g.f.Name()
}

func (g *Faker) Email() string {
	return g.f.Email()
}

func (g *Faker) Company() string {
	return g.f.Company()
}

func (g *Faker) StreetAddress() string {
	return g.f.Street()
}

// Address is a single-line postal address.
func (g *Faker) Address() string {
	return fmt.Sprintf("%s, %s, %s %s", g.f.Street(), g.f.City(), g.f.StateAbr(), g.f.Zip())
}

func (g *Faker) City() string {
	return g.f.City()
}

func (g *Faker) State() string {
	return g.f.State()
}

func (g *Faker) Postcode() string {
	return g.f.Zip()
}

func (g *Faker) Country() string {
	return g.f.Country()
}

func (g *Faker) Phone() string {
	return g.f.Phone()
}

func (g *Faker) DomainName() string {
	return g.f.DomainName()
}

func (g *Faker) Website() string {
	return "https://" + g.f.DomainName()
}

// CompanyEmail is a mailbox on a company-looking domain.
func (g *Faker) CompanyEmail() string {
	return strings.ToLower(g.f.FirstName()) + "@" + g.f.DomainName()
}

// Job is a job title such as "Senior Engineer".
func (g *Faker) Job() string {
	return g.f.JobLevel() + " " + g.f.JobTitle()
}

// CatchPhrase is a short marketing slogan.
func (g *Faker) CatchPhrase() string {
	return Capitalize(g.f.Adjective() + " " + g.f.BuzzWord() + " " + g.f.Noun())
}

// BS is a lower-case business buzz phrase.
func (g *Faker) BS() string {
	return strings.ToLower(g.f.Verb() + " " + g.f.BuzzWord() + " " + g.f.Noun())
}

func (g *Faker) Sentence(words int) string {
	return g.f.Sentence(words)
}

func (g *Faker) Paragraph(sentences int) string {
	return g.f.Paragraph(1, sentences, 10, " ")
}

// Text returns whole sentences whose combined length stays within
// maxChars. The first sentence is cut at a word boundary when it alone is
// too long.
func (g *Faker) Text(maxChars int) string {
	var sb strings.Builder
	for {
		s := g.f.Sentence(g.IntRange(4, 10))
		extra := utf8.RuneCountInString(s)
		if sb.Len() > 0 {
			extra++
		}
		if utf8.RuneCountInString(sb.String())+extra > maxChars {
			break
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
	}
	if sb.Len() == 0 {
		return truncateWords(g.f.Sentence(4), maxChars)
	}
	return sb.String()
}

// CIF returns a company tax code: organisation letter, seven digits and a
// control digit.
func (g *Faker) CIF() string {
	const letters = "ABCDEFGHJNPQRSUVW"
	letter := letters[g.IntRange(0, len(letters)-1)]
	return fmt.Sprintf("%c%d%d", letter, g.IntRange(1000000, 9999999), g.IntRange(0, 9))
}

// NIF returns a personal tax code: eight digits and the matching control
// letter.
func (g *Faker) NIF() string {
	number := g.IntRange(10000000, 99999999)
	return fmt.Sprintf("%d%c", number, NIFLetter(number))
}

func NIFLetter(number int) byte {
	const letters = "TRWAGMYFPDXBNJZSQVHLCKE"
	return letters[number%23]
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func truncateWords(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	out := ""
	for _, w := range strings.Fields(s) {
		next := w
		if out != "" {
			next = out + " " + w
		}
		if utf8.RuneCountInString(next) > max {
			break
		}
		out = next
	}
	return out
}
