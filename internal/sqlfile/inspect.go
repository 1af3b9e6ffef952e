package sqlfile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrSyntax = errors.New("invalid insert statement")

// Pre-compiled patterns used when splitting scripts into statements.
var (
	commentRegex = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex  = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
)

// Summary describes what a fixture file contains.
type Summary struct {
	Path    string
	Table   string
	Columns []string
	Rows    int
	// Quote is the identifier quote of the table name, 0 when unquoted.
	Quote byte
	// Mismatches lists 1-based row numbers whose arity differs from Columns.
	Mismatches []int
}

func (s *Summary) OK() bool {
	return len(s.Mismatches) == 0
}

// LoadableBy reports whether the identifier quoting of the file is
// understood by d. MySQL needs backticks, PostgreSQL double quotes and
// SQLite accepts both.
func (s *Summary) LoadableBy(d Dialect) bool {
	switch s.Quote {
	case '`':
		return d != Postgres
	case '"':
		return d != MySQL
	default:
		return true
	}
}

// Inspect decompresses path and checks that it holds exactly one INSERT
// statement whose tuples all match the column list.
func Inspect(path string) (*Summary, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	summary, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	summary.Path = path
	return summary, nil
}

// Parse checks a single INSERT INTO ... VALUES ...; statement.
func Parse(sql string) (*Summary, error) {
	s := &scanner{src: sql}

	if !s.keyword("INSERT") || !s.keyword("INTO") {
		return nil, fmt.Errorf("%w: expected INSERT INTO at offset %d", ErrSyntax, s.pos)
	}

	s.skipSpace()
	quote := s.peek()
	if quote != '`' && quote != '"' {
		quote = 0
	}
	table, err := s.ident()
	if err != nil {
		return nil, err
	}
	summary := &Summary{Table: table, Quote: quote}

	s.skipSpace()
	if s.peek() == '(' {
		s.pos++
		for {
			col, err := s.ident()
			if err != nil {
				return nil, err
			}
			summary.Columns = append(summary.Columns, col)
			s.skipSpace()
			if s.peek() == ',' {
				s.pos++
				continue
			}
			if s.peek() == ')' {
				s.pos++
				break
			}
			return nil, fmt.Errorf("%w: unterminated column list at offset %d", ErrSyntax, s.pos)
		}
	}

	if !s.keyword("VALUES") {
		return nil, fmt.Errorf("%w: expected VALUES at offset %d", ErrSyntax, s.pos)
	}

	for {
		n, err := s.tuple()
		if err != nil {
			return nil, err
		}
		summary.Rows++
		if summary.Columns == nil {
			// No column list: the first tuple fixes the arity.
			summary.Columns = make([]string, n)
		}
		if n != len(summary.Columns) {
			summary.Mismatches = append(summary.Mismatches, summary.Rows)
		}

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
			continue
		case ';':
			s.pos++
			s.skipSpace()
			if !s.eof() {
				return nil, fmt.Errorf("%w: trailing content after statement at offset %d", ErrSyntax, s.pos)
			}
			return summary, nil
		default:
			return nil, fmt.Errorf("%w: expected ',' or ';' at offset %d", ErrSyntax, s.pos)
		}
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) keyword(kw string) bool {
	s.skipSpace()
	end := s.pos + len(kw)
	if end > len(s.src) || !strings.EqualFold(s.src[s.pos:end], kw) {
		return false
	}
	if end < len(s.src) && isWordByte(s.src[end]) {
		return false
	}
	s.pos = end
	return true
}

func (s *scanner) ident() (string, error) {
	s.skipSpace()
	switch q := s.peek(); q {
	case '`', '"':
		s.pos++
		var sb strings.Builder
		for !s.eof() {
			c := s.src[s.pos]
			s.pos++
			if c == q {
				if s.peek() == q {
					sb.WriteByte(q)
					s.pos++
					continue
				}
				return sb.String(), nil
			}
			sb.WriteByte(c)
		}
		return "", fmt.Errorf("%w: unterminated identifier", ErrSyntax)
	default:
		start := s.pos
		for !s.eof() && isWordByte(s.src[s.pos]) {
			s.pos++
		}
		if start == s.pos {
			return "", fmt.Errorf("%w: expected identifier at offset %d", ErrSyntax, s.pos)
		}
		return s.src[start:s.pos], nil
	}
}

// tuple consumes "(v1, v2, ...)" and returns the number of values.
func (s *scanner) tuple() (int, error) {
	s.skipSpace()
	if s.peek() != '(' {
		return 0, fmt.Errorf("%w: expected '(' at offset %d", ErrSyntax, s.pos)
	}
	s.pos++

	count := 0
	for {
		s.skipSpace()
		if s.peek() == '\'' {
			if err := s.skipString(); err != nil {
				return 0, err
			}
		} else {
			start := s.pos
			for !s.eof() && s.peek() != ',' && s.peek() != ')' && s.peek() != '\'' {
				s.pos++
			}
			if strings.TrimSpace(s.src[start:s.pos]) == "" {
				return 0, fmt.Errorf("%w: empty value at offset %d", ErrSyntax, start)
			}
		}
		count++

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return count, nil
		default:
			return 0, fmt.Errorf("%w: unterminated tuple at offset %d", ErrSyntax, s.pos)
		}
	}
}

func (s *scanner) skipString() error {
	s.pos++ // opening quote
	for !s.eof() {
		c := s.src[s.pos]
		s.pos++
		if c == '\'' {
			if s.peek() == '\'' {
				s.pos++
				continue
			}
			return nil
		}
	}
	return fmt.Errorf("%w: unterminated string literal", ErrSyntax)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// SplitStatements splits a script on semicolons that are not inside quoted
// strings or identifiers. Line comments are dropped.
func SplitStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	inString := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			inString[i] = true
		}
	}

	statements := make([]string, 0, strings.Count(sql, ";")+1)
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i, char := range sql {
		if char == ';' && !inString[i] {
			flush()
			continue
		}
		current.WriteRune(char)
	}
	flush()

	return statements
}
