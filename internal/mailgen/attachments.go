package mailgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imageWidth  = 200
	imageHeight = 100
	jpegQuality = 90

	// ImagesDir and PDFsDir are the folders SaveAttachments writes into.
	ImagesDir = "generated_images"
	PDFsDir   = "generated_pdfs"
)

var (
	background = color.RGBA{R: 73, G: 109, B: 137, A: 255}
	foreground = color.RGBA{R: 255, G: 255, A: 255}
	loremLine  = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. "
)

// Attachment is a file ready to be embedded in a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Image renders text in yellow over a blue-grey 200x100 JPEG.
func Image(text string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 40+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders an A4 page with five blocks of lorem ipsum.
func PDF(created time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	text := strings.Repeat(loremLine, 10)
	for range 5 {
		pdf.MultiCell(0, 10, text, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Attachments builds the pool messages draw from: image_1.jpg..image_5.jpg
// and document_1.pdf..document_5.pdf.
func Attachments(created time.Time) (images, pdfs []Attachment, err error) {
	for i := 1; i <= 5; i++ {
		data, err := Image(fmt.Sprintf("Image %d", i))
		if err != nil {
			return nil, nil, err
		}
		images = append(images, Attachment{
			Name:        fmt.Sprintf("image_%d.jpg", i),
			ContentType: "image/jpeg",
			Data:        data,
		})
	}

	for i := 1; i <= 5; i++ {
		data, err := PDF(created)
		if err != nil {
			return nil, nil, err
		}
		pdfs = append(pdfs, Attachment{
			Name:        fmt.Sprintf("document_%d.pdf", i),
			ContentType: "application/pdf",
			Data:        data,
		})
	}
	return images, pdfs, nil
}

// SaveAttachments writes the pool under dir/generated_images and
// dir/generated_pdfs.
func SaveAttachments(dir string, images, pdfs []Attachment) error {
	sets := []struct {
		sub   string
		files []Attachment
	}{
		{ImagesDir, images},
		{PDFsDir, pdfs},
	}

	for _, set := range sets {
		target := filepath.Join(dir, set.sub)
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		for _, a := range set.files {
			if err := os.WriteFile(filepath.Join(target, a.Name), a.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", a.Name, err)
			}
		}
	}
	return nil
}
