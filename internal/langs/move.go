package langs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoItems = errors.New("no items provided")

type MoveOptions struct {
	AppsDir string
	APIDir  string
	// From and To hold group names or "global".
	From  []string
	To    []string
	Items []string
}

// MoveResult reports what happened for one language.
type MoveResult struct {
	Lang    string
	Moved   int
	Targets []string
}

// ParseList splits a comma separated flag value, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Move removes the lines defining any of the items from every source
// dictionary and appends them to every target dictionary, once per
// language found in the sources.
func Move(opts MoveOptions) ([]MoveResult, error) {
	if len(opts.Items) == 0 {
		return nil, ErrNoItems
	}
	if len(opts.From) == 0 || len(opts.To) == 0 {
		return nil, errors.New("both sources and targets are required")
	}

	langs, err := moveLanguages(opts)
	if err != nil {
		return nil, err
	}

	var results []MoveResult
	for _, lang := range langs {
		var moved []string
		for _, src := range opts.From {
			lines, err := extractLines(opts.dictionaryPath(src, lang), opts.Items)
			if err != nil {
				return results, err
			}
			moved = append(moved, lines...)
		}

		result := MoveResult{Lang: lang, Moved: len(moved)}
		if len(moved) > 0 {
			for _, tgt := range opts.To {
				if err := appendLines(opts.dictionaryPath(tgt, lang), moved); err != nil {
					return results, err
				}
				result.Targets = append(result.Targets, tgt)
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (o MoveOptions) dictionaryPath(name, lang string) string {
	if name == GlobalDictionary {
		return filepath.Join(o.APIDir, "locale", lang, messagesFile)
	}
	return groupDictionaryPath(o.AppsDir, name, lang)
}

// moveLanguages lists the languages of the global dictionary when it is a
// source, or the union of the source groups' languages otherwise.
func moveLanguages(opts MoveOptions) ([]string, error) {
	if contains(opts.From, GlobalDictionary) {
		dir := filepath.Join(opts.APIDir, "locale")
		langs, err := listDirs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list languages in %s: %w", dir, err)
		}
		return langs, nil
	}

	seen := map[string]bool{}
	for _, group := range opts.From {
		langs, err := listDirs(filepath.Join(opts.AppsDir, group, "locale"))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, l := range langs {
			seen[l] = true
		}
	}

	var out []string
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out, nil
}

// extractLines rewrites path without the lines defining items and returns
// the removed lines. A missing file yields nothing.
func extractLines(path string, items []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var kept, moved []string
	for _, line := range splitLines(string(data)) {
		if definesAny(line, items) {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			moved = append(moved, line)
		} else {
			kept = append(kept, line)
		}
	}
	if len(moved) == 0 {
		return nil, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(kept, "")), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return moved, nil
}

func appendLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(lines, "")

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func definesAny(line string, items []string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, key := range items {
		if strings.HasPrefix(trimmed, key+":") {
			return true
		}
	}
	return false
}

// splitLines keeps the line terminators.
func splitLines(s string) []string {
	var lines []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}
