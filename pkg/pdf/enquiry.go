package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Field is one submitted enquiry value. Fields render in order.
type Field struct {
	Label string
	Value string
}

// BuildEnquiry renders the submitted enquiry as a PDF: the company logo when
// available, a title, then one label/value line per field.
func BuildEnquiry(fields []Field, logoPNG []byte) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle("Palmertech Project Enquiry", true)
	doc.AddPage()

	y := 60.0
	if len(logoPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logoPNG))
		doc.ImageOptions("logo", 50, 40, 120, 100, false, opts, 0, "")
		y = 160
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(50, y)
	doc.CellFormat(0, 20, "Palmertech Project Enquiry", "", 1, "C", false, 0, "")
	y += 50

	doc.SetFont("Helvetica", "", 12)
	for _, f := range fields {
		doc.SetXY(50, y)
		doc.CellFormat(0, 14, fmt.Sprintf("%s: %s", f.Label, f.Value), "", 1, "L", false, 0, "")
		y += 25
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render enquiry: %w", err)
	}
	return buf.Bytes(), nil
}
