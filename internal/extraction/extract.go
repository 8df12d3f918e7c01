// Package extraction turns uploaded résumé documents into plain text and
// inspects the result for ATS-compatibility problems.
package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format identifies the declared document format of an upload.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatUnknown Format = "unknown"
)

// TextCap bounds stored résumé text to keep storage and scoring cost sane.
const TextCap = 200000

// DetectFormat maps an uploaded filename to a Format by extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx", ".doc":
		return FormatDOCX
	default:
		return FormatUnknown
	}
}

// Extract returns the plain text of a document. It never returns an error:
// unknown formats and parser failures yield an empty string, which downstream
// code treats as the failure signal.
func Extract(content []byte, format Format) (text string) {
	// Some parsers panic on malformed input; absence of text is the only
	// failure mode allowed past this boundary.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[extract] parser panic for %s document: %v", format, r)
			text = ""
		}
	}()

	switch format {
	case FormatPDF:
		return extractPDF(content)
	case FormatDOCX:
		return extractDOCX(content)
	default:
		return ""
	}
}

// Truncate caps extracted text to TextCap characters before persistence. The
// cap counts runes, not bytes, so multibyte text is never cut mid-rune and
// the result stays valid UTF-8.
func Truncate(text string) string {
	if len(text) <= TextCap {
		return text
	}
	count := 0
	for i := range text {
		if count == TextCap {
			return text[:i]
		}
		count++
	}
	return text
}

// extractPDF concatenates per-page text in page order. A page that yields no
// text contributes nothing rather than failing the document.
func extractPDF(content []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String()
}

// docx paragraph markup inside word/document.xml: text lives in <w:t> runs
// grouped under <w:p> paragraphs.
func extractDOCX(content []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		return paragraphText(rc)
	}
	return ""
}

// paragraphText walks the document XML and joins paragraph texts with
// newlines, preserving document order.
func paragraphText(r io.Reader) string {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
					inParagraph = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inParagraph && inText {
				current.Write(el)
			}
		}
	}
	return strings.Join(paragraphs, "\n")
}
