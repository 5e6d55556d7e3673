package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

// A4 at 96 CSS pixels per inch.
const (
	PageWidthPx  = 794
	PageHeightPx = 1123

	pageWidthMM = 210.0

	// pixelRatio keeps text sharp when the page image is printed.
	pixelRatio = 2
)

// Scale resizes src to width pixels, keeping the aspect ratio.
func Scale(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx() == width {
		return src
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Paginate cuts src into consecutive slices of at most pageHeight pixels.
// The last slice keeps its natural height.
func Paginate(src image.Image, pageHeight int) []image.Image {
	b := src.Bounds()
	if pageHeight <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	var pages []image.Image
	for y := b.Min.Y; y < b.Max.Y; y += pageHeight {
		h := pageHeight
		if y+h > b.Max.Y {
			h = b.Max.Y - y
		}
		page := image.NewRGBA(image.Rect(0, 0, b.Dx(), h))
		draw.Draw(page, page.Bounds(), src, image.Pt(b.Min.X, y), draw.Src)
		pages = append(pages, page)
	}
	return pages
}

// Assemble places each page image full-width on its own A4 page.
func Assemble(pages []image.Image) ([]byte, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages to assemble")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, p := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, p); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		b := p.Bounds()
		heightMM := pageWidthMM * float64(b.Dy()) / float64(b.Dx())
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, pageWidthMM, heightMM, false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// FileName is "First_Last_Resume.pdf", skipping missing name parts.
func FileName(doc *model.ResumeDocument) string {
	var parts []string
	if doc != nil {
		for _, s := range []string{doc.Personal.FirstName, doc.Personal.LastName} {
			s = strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(s), "_"), "_")
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(append(parts, "Resume.pdf"), "_")
}
