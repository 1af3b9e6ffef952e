// Package langs audits and maintains the translation dictionaries of the
// application: every group under code/apps keeps its own
// locale/<lang>/messages.yaml on top of the generic one in code/api.
package langs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

const (
	StatusPresent             = "present"
	StatusMissing             = "missing"
	StatusMissingInOtherGroup = "missing_but_in_other_group"

	FilterMissing = "missing"
	FilterPresent = "present"

	// GlobalDictionary names the generic dictionary in move operations.
	GlobalDictionary = "global"

	messagesFile   = "messages.yaml"
	originalMaxLen = 35
)

var ErrInvalidLang = errors.New("invalid language code")

type CheckOptions struct {
	AppsDir string
	APIDir  string
	Lang    string
	// Group limits the audit to one application group and enables the
	// lookup in the other groups' dictionaries.
	Group  string
	Filter string
	Logger *zap.Logger
}

// Row is one translatable text and its dictionary status.
type Row struct {
	Group    string
	File     string
	Origin   string
	Original string
	Key      string
	Status   string
}

type Report struct {
	Lang string
	// LangName is the English display name of Lang, e.g. "Catalan (Spain)".
	LangName string
	Rows     []Row
	// Errors lists files that could not be parsed and were skipped.
	Errors []string
}

type dictionary map[string]any

func (d dictionary) has(key string) bool {
	_, ok := d[key]
	return ok
}

// ParseLang validates a locale directory name such as ca_ES or en_US.
func ParseLang(code string) (language.Tag, error) {
	if code == "" {
		return language.Und, fmt.Errorf("%w: empty", ErrInvalidLang)
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %s", ErrInvalidLang, code)
	}
	return tag, nil
}

// Check walks every application group and reports, for each translatable
// text, whether its key exists in the combined dictionary of the group.
func Check(opts CheckOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Filter != "" && opts.Filter != FilterMissing && opts.Filter != FilterPresent {
		return nil, fmt.Errorf("invalid filter %q (use %s or %s)", opts.Filter, FilterMissing, FilterPresent)
	}
	tag, err := ParseLang(opts.Lang)
	if err != nil {
		return nil, err
	}

	groups, err := listDirs(opts.AppsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if opts.Group != "" && !contains(groups, opts.Group) {
		return nil, fmt.Errorf("group %s not found in %s", opts.Group, opts.AppsDir)
	}

	generic, err := loadDictionary(filepath.Join(opts.APIDir, "locale", opts.Lang, messagesFile))
	if err != nil {
		return nil, err
	}

	others := map[string]dictionary{}
	if opts.Group != "" {
		for _, g := range groups {
			if g == opts.Group {
				continue
			}
			d, err := loadDictionary(groupDictionaryPath(opts.AppsDir, g, opts.Lang))
			if err != nil {
				return nil, err
			}
			if d != nil {
				others[g] = d
			}
		}
	}

	report := &Report{Lang: opts.Lang, LangName: display.English.Tags().Name(tag)}
	for _, group := range groups {
		if opts.Group != "" && group != opts.Group {
			continue
		}

		own, err := loadDictionary(groupDictionaryPath(opts.AppsDir, group, opts.Lang))
		if err != nil {
			return nil, err
		}
		combined := dictionary{}
		for k, v := range generic {
			combined[k] = v
		}
		for k, v := range own {
			combined[k] = v
		}

		for _, file := range sourceFiles(filepath.Join(opts.AppsDir, group)) {
			entries, err := ExtractFile(file)
			if err != nil {
				logger.Warn("skipping unparsable file", zap.String("group", group), zap.String("file", file), zap.Error(err))
				report.Errors = append(report.Errors, fmt.Sprintf("%s\t%s\t%v", group, filepath.Base(file), err))
				continue
			}

			for _, e := range entries {
				key := TextToKey(e.Text)
				missing := !combined.has(key)
				if (opts.Filter == FilterMissing && !missing) || (opts.Filter == FilterPresent && missing) {
					continue
				}

				status := StatusPresent
				if missing {
					status = StatusMissing
					for _, d := range others {
						if d.has(key) {
							status = StatusMissingInOtherGroup
							break
						}
					}
				}

				report.Rows = append(report.Rows, Row{
					Group:    group,
					File:     filepath.Base(file),
					Origin:   e.Origin,
					Original: truncate(e.Text, originalMaxLen),
					Key:      key,
					Status:   status,
				})
			}
		}
	}
	return report, nil
}

// sourceFiles lists xml/*.xml, xml/*.yaml and js/*.js of a group in that
// order, skipping minified scripts and source maps.
func sourceFiles(groupDir string) []string {
	var files []string
	for _, pattern := range []string{"xml/*.xml", "xml/*.yaml", "js/*.js"} {
		matches, _ := filepath.Glob(filepath.Join(groupDir, pattern))
		sort.Strings(matches)
		for _, m := range matches {
			if strings.HasSuffix(m, ".min.js") {
				continue
			}
			files = append(files, m)
		}
	}
	return files
}

func groupDictionaryPath(appsDir, group, lang string) string {
	return filepath.Join(appsDir, group, "locale", lang, messagesFile)
}

// loadDictionary returns nil when the file does not exist.
func loadDictionary(path string) (dictionary, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var d dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return d, nil
}

func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
