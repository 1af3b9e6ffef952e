package langs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tree struct {
	root string
}

func newTree(t *testing.T) *tree {
	return &tree{root: t.TempDir()}
}

func (tr *tree) apps() string { return filepath.Join(tr.root, "code", "apps") }
func (tr *tree) api() string  { return filepath.Join(tr.root, "code", "api") }

func (tr *tree) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(tr.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (tr *tree) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.root, rel))
	require.NoError(t, err)
	return string(data)
}

func TestTextToKey(t *testing.T) {
	tests := map[string]string{
		"Customer name":     "customer_name",
		"  Due date (days)": "due_date_days",
		"E-mail / Phone!!":  "e_mail_phone",
		"Año":               "a_o",
		"---":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, TextToKey(in), in)
	}
}

func TestParseLang(t *testing.T) {
	tag, err := ParseLang("ca_ES")
	require.NoError(t, err)
	assert.Equal(t, "ca-ES", tag.String())

	_, err = ParseLang("")
	assert.ErrorIs(t, err, ErrInvalidLang)
	_, err = ParseLang("not a lang")
	assert.ErrorIs(t, err, ErrInvalidLang)
}

func TestExtractXML(t *testing.T) {
	tr := newTree(t)
	path := tr.write(t, "list.xml", `<root>
  <field label="Customer name" tooltip="Name of the customer"/>
  <grid type="table" header='{"label":"Total amount"}' footer="Footer text"
        actions='[{"label":"Edit","tooltip":"Edit row"}]'/>
  <button menu='[{"label":"Delete"}]'/>
</root>`)

	entries, err := ExtractXML(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{
		{"label", "Customer name"},
		{"tooltip", "Name of the customer"},
		{"header.label", "Total amount"},
		{"footer", "Footer text"},
		{"actions.label", "Edit"},
		{"actions.tooltip", "Edit row"},
		{"menu.label", "Delete"},
	}, entries)
}

func TestExtractXMLParseError(t *testing.T) {
	tr := newTree(t)
	path := tr.write(t, "broken.xml", `<root><field label="x"></root>`)
	_, err := ExtractXML(path)
	assert.Error(t, err)
}

func TestExtractPDFAndManifest(t *testing.T) {
	tr := newTree(t)
	pdf := tr.write(t, "invoice_pdf.xml", `<pdf>
  <text>T('Invoice') + T("Due date")</text>
  <other>T('Ignored')</other>
  <output>T(' ')</output>
</pdf>`)
	entries, err := ExtractPDF(pdf)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"pdf", "Due date"}, {"pdf", "Invoice"}}, entries)

	manifest := tr.write(t, "manifest.xml", `<root>
  <group name="Sales" description="Sales management"/>
  <app name="Invoices"/>
  <other name="Nope"/>
</root>`)
	entries, err = ExtractManifest(manifest)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{
		{"manifest", "Sales"},
		{"manifest", "Sales management"},
		{"manifest", "Invoices"},
	}, entries)
}

func TestExtractPDFIgnoresTextAfterChildElements(t *testing.T) {
	tr := newTree(t)
	pdf := tr.write(t, "report_pdf.xml", `<pdf>
  <text>T('Head')<font size="8"/>T('Tail')</text>
  <textarea><![CDATA[T("Notes")]]></textarea>
  <query>SELECT 1</query>T('Root tail')
</pdf>`)
	entries, err := ExtractPDF(pdf)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"pdf", "Head"}, {"pdf", "Notes"}}, entries)
}

func TestExtractYAMLAndJS(t *testing.T) {
	tr := newTree(t)
	y := tr.write(t, "fields.yaml", `list:
  - [name, text, Customer name]
  - [id, hidden]
form:
  - [email, text, Email address, extra]
other:
  - [x, y, Not read]
`)
	entries, err := ExtractYAML(y)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"form", "Email address"}, {"list", "Customer name"}}, entries)

	js := tr.write(t, "app.js", `saltos.app.alert(T('Saved'), T("Not saved"));
var x = T('');`)
	entries, err = ExtractJS(js)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"js", "Not saved"}, {"js", "Saved"}}, entries)
}

func checkTree(t *testing.T) *tree {
	tr := newTree(t)
	tr.write(t, "code/api/locale/es_ES/messages.yaml", "save: Guardar\n")
	tr.write(t, "code/apps/sales/locale/es_ES/messages.yaml", "invoice: Factura\n")
	tr.write(t, "code/apps/crm/locale/es_ES/messages.yaml", "customer_name: Nombre del cliente\n")
	tr.write(t, "code/apps/sales/xml/invoices.xml",
		`<root><a label="Invoice"/><b label="Save"/><c label="Customer name"/><d label="A very long label that will be truncated"/></root>`)
	tr.write(t, "code/apps/sales/xml/broken.xml", `<root>`)
	tr.write(t, "code/apps/sales/js/sales.js", `T('Invoice');`)
	tr.write(t, "code/apps/sales/js/sales.min.js", `T('Minified');`)
	tr.write(t, "code/apps/crm/js/crm.js", `T('Customer name');`)
	return tr
}

func statuses(r *Report) map[string]string {
	out := map[string]string{}
	for _, row := range r.Rows {
		out[row.Group+"/"+row.File+"/"+row.Key] = row.Status
	}
	return out
}

func TestCheckAllGroups(t *testing.T) {
	tr := checkTree(t)
	report, err := Check(CheckOptions{AppsDir: tr.apps(), APIDir: tr.api(), Lang: "es_ES"})
	require.NoError(t, err)

	got := statuses(report)
	assert.Equal(t, StatusPresent, got["sales/invoices.xml/invoice"])
	assert.Equal(t, StatusPresent, got["sales/invoices.xml/save"])
	// Without a group filter other groups are not consulted.
	assert.Equal(t, StatusMissing, got["sales/invoices.xml/customer_name"])
	assert.Equal(t, StatusPresent, got["crm/crm.js/customer_name"])
	assert.Equal(t, StatusPresent, got["sales/sales.js/invoice"])
	assert.NotContains(t, got, "sales/sales.min.js/minified")

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "broken.xml")

	for _, row := range report.Rows {
		assert.LessOrEqual(t, len([]rune(row.Original)), 35)
	}
	assert.NotEmpty(t, report.LangName)
}

func TestCheckGroupFilter(t *testing.T) {
	tr := checkTree(t)
	report, err := Check(CheckOptions{
		AppsDir: tr.apps(), APIDir: tr.api(), Lang: "es_ES", Group: "sales", Filter: FilterMissing,
	})
	require.NoError(t, err)

	got := statuses(report)
	assert.Equal(t, StatusMissingInOtherGroup, got["sales/invoices.xml/customer_name"])
	assert.Equal(t, StatusMissing, got["sales/invoices.xml/a_very_long_label_that_will_be_truncated"])
	assert.NotContains(t, got, "sales/invoices.xml/invoice")
	for _, row := range report.Rows {
		assert.Equal(t, "sales", row.Group)
	}

	_, err = Check(CheckOptions{AppsDir: tr.apps(), APIDir: tr.api(), Lang: "es_ES", Group: "hr"})
	assert.Error(t, err)
	_, err = Check(CheckOptions{AppsDir: tr.apps(), APIDir: tr.api(), Lang: "es_ES", Filter: "all"})
	assert.Error(t, err)
}

func TestReportOutput(t *testing.T) {
	r := &Report{Lang: "es_ES", Rows: []Row{
		{Group: "sales", File: "a.xml", Origin: "label", Original: "Hi, there", Key: "hi_there", Status: StatusMissing},
	}}

	var table bytes.Buffer
	r.Print(&table)
	lines := strings.Split(table.String(), "\n")
	assert.Equal(t, "# Translation review for language: es_ES", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "group      file"))
	assert.True(t, strings.HasPrefix(lines[4], "sales      a.xml"))

	var out bytes.Buffer
	require.NoError(t, r.WriteCSV(&out))
	assert.Equal(t, "group,file,origin,original,key,status\nsales,a.xml,label,\"Hi, there\",hi_there,missing\n", out.String())
	assert.Equal(t, map[string]int{StatusMissing: 1}, r.Counts())
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b ,"))
	assert.Nil(t, ParseList(""))
}

func TestMove(t *testing.T) {
	tr := newTree(t)
	tr.write(t, "code/apps/crm/locale/es_ES/messages.yaml", "keep: Mantener\ncustomer: Cliente\n  lead: Lead")
	tr.write(t, "code/apps/crm/locale/en_US/messages.yaml", "keep: Keep\n")
	tr.write(t, "code/api/locale/es_ES/messages.yaml", "save: Guardar")

	results, err := Move(MoveOptions{
		AppsDir: tr.apps(),
		APIDir:  tr.api(),
		From:    []string{"crm"},
		To:      []string{"global", "sales"},
		Items:   []string{"customer", "lead"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, MoveResult{Lang: "en_US", Moved: 0}, results[0])
	assert.Equal(t, MoveResult{Lang: "es_ES", Moved: 2, Targets: []string{"global", "sales"}}, results[1])

	assert.Equal(t, "keep: Mantener\n", tr.read(t, "code/apps/crm/locale/es_ES/messages.yaml"))
	assert.Equal(t, "save: Guardar\ncustomer: Cliente\n  lead: Lead\n", tr.read(t, "code/api/locale/es_ES/messages.yaml"))
	assert.Equal(t, "customer: Cliente\n  lead: Lead\n", tr.read(t, "code/apps/sales/locale/es_ES/messages.yaml"))
	assert.Equal(t, "keep: Keep\n", tr.read(t, "code/apps/crm/locale/en_US/messages.yaml"))
}

func TestMoveFromGlobal(t *testing.T) {
	tr := newTree(t)
	tr.write(t, "code/api/locale/ca_ES/messages.yaml", "save: Desar\nclose: Tancar\n")
	tr.write(t, "code/api/locale/es_ES/messages.yaml", "close: Cerrar\n")

	results, err := Move(MoveOptions{
		AppsDir: tr.apps(), APIDir: tr.api(),
		From: []string{"global"}, To: []string{"emails"}, Items: []string{"save"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Moved)
	assert.Equal(t, 0, results[1].Moved)
	assert.Equal(t, "save: Desar\n", tr.read(t, "code/apps/emails/locale/ca_ES/messages.yaml"))
	assert.NoFileExists(t, filepath.Join(tr.apps(), "emails", "locale", "es_ES", "messages.yaml"))
}

func TestMoveRequiresItems(t *testing.T) {
	_, err := Move(MoveOptions{From: []string{"crm"}, To: []string{"sales"}})
	assert.ErrorIs(t, err, ErrNoItems)
}
