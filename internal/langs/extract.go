package langs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a translatable text found in a source file. Origin tells where
// it came from: an attribute name, "pdf", "manifest", "list", "form" or
// "js".
type Entry struct {
	Origin string
	Text   string
}

// Attributes whose value is shown to the user as is.
var translatableAttrs = []string{
	"label", "tooltip", "placeholder",
	"title", "subtitle", "close", "body", "footer",
}

// Elements of a PDF layout whose text may hold T() calls.
var pdfElements = map[string]bool{
	"text": true, "textarea": true, "output": true, "query": true,
}

var (
	nonKeyRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	tCallRegex   = regexp.MustCompile(`\bT\('(?s:(.*?))'\)|\bT\("(?s:(.*?))"\)`)
	labelRegex   = regexp.MustCompile(`"label"\s*:\s*"(.*?)"`)
	valueRegex   = regexp.MustCompile(`"value"\s*:\s*"(.*?)"`)
	actionsRegex = regexp.MustCompile(`"(label|tooltip)"\s*:\s*"(.*?)"`)
)

// TextToKey turns a visible text into its dictionary key: lower case with
// every run of characters outside [a-z0-9] collapsed to one underscore.
func TextToKey(text string) string {
	key := nonKeyRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "_")
	return strings.Trim(key, "_")
}

// entrySet collects unique entries.
type entrySet map[Entry]struct{}

func (s entrySet) add(origin, text string) {
	s[Entry{Origin: origin, Text: text}] = struct{}{}
}

func (s entrySet) sorted() []Entry {
	out := make([]Entry, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// ExtractFile picks the extractor matching the file name.
func ExtractFile(path string) ([]Entry, error) {
	base := filepath.Base(path)
	switch {
	case base == "manifest.xml":
		return ExtractManifest(path)
	case strings.HasSuffix(base, "_pdf.xml"):
		return ExtractPDF(path)
	case strings.HasSuffix(base, ".xml"):
		return ExtractXML(path)
	case strings.HasSuffix(base, ".yaml"):
		return ExtractYAML(path)
	case strings.HasSuffix(base, ".js"):
		return ExtractJS(path)
	}
	return nil, fmt.Errorf("no extractor for %s", base)
}

// walkXML calls start for every start element and text for the character
// data an element holds before its first child, passing the element name.
// Text following a child element belongs to that child's tail and is not
// reported.
func walkXML(path string, start func(xml.StartElement), text func(parent, data string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := xml.NewDecoder(f)
	d.Entity = xml.HTMLEntity
	type frame struct {
		name  string
		child bool
	}
	var stack []frame
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].child = true
			}
			stack = append(stack, frame{name: t.Name.Local})
			if start != nil {
				start(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if text == nil || len(stack) == 0 {
				continue
			}
			if top := stack[len(stack)-1]; !top.child {
				text(top.name, string(t))
			}
		}
	}
}

func attrs(el xml.StartElement) map[string]string {
	m := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

// ExtractXML reads a screen definition: direct attributes, table
// header/footer objects, actions and menus.
func ExtractXML(path string) ([]Entry, error) {
	set := entrySet{}
	err := walkXML(path, func(el xml.StartElement) {
		a := attrs(el)
		for _, name := range translatableAttrs {
			if v := a[name]; v != "" {
				set.add(name, v)
			}
		}

		if a["type"] == "table" {
			for _, side := range []string{"header", "footer"} {
				obj := a[side]
				if obj == "" {
					continue
				}
				switch {
				case strings.HasPrefix(obj, "{") && strings.Contains(obj, "label"):
					if m := labelRegex.FindStringSubmatch(obj); m != nil {
						set.add(side+".label", m[1])
					}
				case strings.HasPrefix(obj, "{") && strings.Contains(obj, "value"):
					if m := valueRegex.FindStringSubmatch(obj); m != nil {
						set.add(side+".value", m[1])
					}
				default:
					set.add(side, obj)
				}
			}
		}

		if actions, ok := a["actions"]; ok {
			for _, m := range actionsRegex.FindAllStringSubmatch(actions, -1) {
				set.add("actions."+m[1], m[2])
			}
		}
		if menu, ok := a["menu"]; ok {
			for _, m := range labelRegex.FindAllStringSubmatch(menu, -1) {
				set.add("menu.label", m[1])
			}
		}
	}, nil)
	if err != nil {
		return nil, err
	}
	return set.sorted(), nil
}

// ExtractPDF finds T() calls inside the text nodes of a PDF layout.
func ExtractPDF(path string) ([]Entry, error) {
	set := entrySet{}
	err := walkXML(path, nil, func(parent, data string) {
		if pdfElements[parent] {
			for _, text := range tCalls(data) {
				set.add("pdf", text)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return set.sorted(), nil
}

// ExtractManifest reads the name and description of groups and apps.
func ExtractManifest(path string) ([]Entry, error) {
	set := entrySet{}
	err := walkXML(path, func(el xml.StartElement) {
		if el.Name.Local != "group" && el.Name.Local != "app" {
			return
		}
		a := attrs(el)
		for _, name := range []string{"name", "description"} {
			if v := a[name]; v != "" {
				set.add("manifest", v)
			}
		}
	}, nil)
	if err != nil {
		return nil, err
	}
	return set.sorted(), nil
}

// ExtractYAML reads list and form definitions, where the third item of
// each field is its label.
func ExtractYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	set := entrySet{}
	for _, section := range []string{"list", "form"} {
		items, ok := doc[section].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			field, ok := item.([]any)
			if !ok || len(field) < 3 {
				continue
			}
			if label, ok := field[2].(string); ok && label != "" {
				set.add(section, label)
			}
		}
	}
	return set.sorted(), nil
}

// ExtractJS finds T('...') and T("...") calls.
func ExtractJS(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set := entrySet{}
	for _, text := range tCalls(string(data)) {
		set.add("js", text)
	}
	return set.sorted(), nil
}

func tCalls(src string) []string {
	var out []string
	for _, m := range tCallRegex.FindAllStringSubmatch(src, -1) {
		text := m[1]
		if text == "" {
			text = m[2]
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}
