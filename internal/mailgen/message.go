// Package mailgen produces the sample mailbox for the emails application:
// gzip-compressed RFC 5322 messages with plain and HTML bodies and an
// occasional image or PDF attachment.
package mailgen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/fake"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

const Extension = ".eml.gz"

var (
	// BaseDate is the Date of message zero; each message is ten minutes
	// later than the previous one.
	BaseDate = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	personalMessages = []string{
		"Hey! Just checking in. Been a while since we last talked. Hope you're doing well!",
		"I saw your post yesterday and it reminded me of our trip to the mountains. Good times!",
		"Let me know if you're free for a coffee this weekend. I’d love to catch up properly.",
	}
	businessMessages = []string{
		"Please find the attached report with all the project updates from this week.",
		"Let me know your availability to schedule the next planning meeting.",
		"Attached is the revised proposal for the client. Please review before our call.",
	}
)

type Options struct {
	Dir   string
	Count int
	Seed  uint64
	// AttachmentsDir, when set, also receives the image and PDF pool.
	AttachmentsDir string
	Logger         *zap.Logger
}

// Message is one generated email before serialization.
type Message struct {
	Index      int
	From       string
	To         string
	Subject    string
	Date       time.Time
	Plain      string
	HTML       string
	Attachment *Attachment
}

// Generate writes Count messages named email_0001.eml.gz onwards into Dir
// and returns their paths.
func Generate(opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Count <= 0 {
		opts.Count = 100
	}

	images, pdfs, err := Attachments(BaseDate)
	if err != nil {
		return nil, err
	}
	if opts.AttachmentsDir != "" {
		if err := SaveAttachments(opts.AttachmentsDir, images, pdfs); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", opts.Dir, err)
	}

	f := fake.New(opts.Seed, BaseDate)
	var paths []string
	for i := 1; i <= opts.Count; i++ {
		msg := NewMessage(f, i, images, pdfs)
		raw, err := msg.Bytes(opts.Seed)
		if err != nil {
			return paths, fmt.Errorf("failed to build email %d: %w", i, err)
		}

		path := filepath.Join(opts.Dir, fmt.Sprintf("email_%04d%s", i, Extension))
		if err := writeGzip(path, raw); err != nil {
			return paths, err
		}
		logger.Debug("wrote email", zap.String("path", path), zap.Bool("attachment", msg.Attachment != nil))
		paths = append(paths, path)
	}
	return paths, nil
}

// NewMessage picks headers, bodies and an optional attachment. Even
// indexes are personal mail, odd ones are business mail.
func NewMessage(f *fake.Faker, index int, images, pdfs []Attachment) *Message {
	m := &Message{
		Index: index,
		Date:  BaseDate.Add(time.Duration(index) * 10 * time.Minute),
	}
	if index%2 == 0 {
		m.From = f.Choice([]string{"alice", "bob"}) + "@example.com"
		m.To = f.Choice([]string{"diana", "eve"}) + "@example.com"
		m.Subject = "Catching Up"
	} else {
		m.From = f.Choice([]string{"jane.doe", "manager"}) + "@business.com"
		m.To = f.Choice([]string{"ceo", "it.support"}) + "@business.com"
		m.Subject = "Business Update"
	}

	n := f.IntRange(1, 6)
	plain := make([]string, n)
	var html strings.Builder
	html.WriteString("<html><body>")
	for i := range n {
		plain[i] = paragraph(f)
		html.WriteString("<p>" + paragraph(f) + "</p>")
	}
	html.WriteString("</body></html>")
	m.Plain = strings.Join(plain, "\n\n")
	m.HTML = html.String()

	if f.Bool() {
		pool := pdfs
		if f.Bool() {
			pool = images
		}
		if len(pool) > 0 {
			a := pool[f.IntRange(0, len(pool)-1)]
			m.Attachment = &a
		}
	}
	return m
}

func paragraph(f *fake.Faker) string {
	samples := append(append([]string{}, personalMessages...), businessMessages...)
	picked := make([]string, f.IntRange(10, 20))
	for i := range picked {
		picked[i] = f.Choice(samples)
	}
	return strings.Join(picked, " ") + "."
}

// messageID is stable for a seeded run and random otherwise, so mailboxes
// from two random runs can be imported together.
func messageID(seed uint64, index int) uuid.UUID {
	if seed == 0 {
		return uuid.New()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d/%d", seed, index)))
}

// Bytes serializes the message. Messages with an attachment are
// multipart/mixed wrapping the multipart/alternative bodies.
func (m *Message) Bytes(seed uint64) ([]byte, error) {
	id := messageID(seed, m.Index)
	domain := m.From[strings.IndexByte(m.From, '@')+1:]

	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("MIME-Version", "1.0")
	header("From", m.From)
	header("To", m.To)
	header("Subject", m.Subject)
	header("Date", m.Date.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", id, domain))

	alt, err := m.alternative(id.String())
	if err != nil {
		return nil, err
	}

	if m.Attachment == nil {
		header("Content-Type", alt.contentType)
		buf.WriteString("\r\n")
		buf.Write(alt.body)
		return buf.Bytes(), nil
	}

	mixed := multipart.NewWriter(&buf)
	if err := mixed.SetBoundary("mixed-" + id.String()); err != nil {
		return nil, err
	}
	header("Content-Type", "multipart/mixed; boundary="+mixed.Boundary())
	buf.WriteString("\r\n")

	part, err := mixed.CreatePart(textproto.MIMEHeader{"Content-Type": {alt.contentType}})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(alt.body); err != nil {
		return nil, err
	}

	a := m.Attachment
	part, err = mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {fmt.Sprintf("%s; name=%q", a.ContentType, a.Name)},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Name)},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(part, a.Data); err != nil {
		return nil, err
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entity struct {
	contentType string
	body        []byte
}

func (m *Message) alternative(id string) (entity, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary("alt-" + id); err != nil {
		return entity{}, err
	}

	bodies := []struct{ kind, text string }{
		{"text/plain", m.Plain},
		{"text/html", m.HTML},
	}
	for _, b := range bodies {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {b.kind + `; charset="utf-8"`},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return entity{}, err
		}
		qp := quotedprintable.NewWriter(part)
		if _, err := qp.Write([]byte(b.text)); err != nil {
			return entity{}, err
		}
		if err := qp.Close(); err != nil {
			return entity{}, err
		}
	}

	if err := w.Close(); err != nil {
		return entity{}, err
	}
	return entity{contentType: "multipart/alternative; boundary=" + w.Boundary(), body: buf.Bytes()}, nil
}

// writeBase64 encodes data in 76 character lines.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	gz.Name = strings.TrimSuffix(filepath.Base(path), ".gz")
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return fmt.Errorf("failed to compress %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", path, err)
	}
	return f.Close()
}
