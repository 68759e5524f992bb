package storage

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/muhammadolammi/pivot/internal/plan"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func Supported(mime string) bool {
	switch mime {
	case MimeText, MimePDF, MimeDocx:
		return true
	}
	return false
}

func unsupported(mime string) error {
	if mime == "" {
		mime = "unknown"
	}
	return fmt.Errorf("%w: %s", plan.ErrUnsupportedDocument, mime)
}

func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MimeText:
		return string(data), nil

	case MimePDF:
		return extractPDFText(bytes.NewReader(data))

	case MimeDocx:
		return extractDocxText(bytes.NewReader(data))

	default:
		return "", unsupported(mime)
	}
}

func extractPDFText(reader *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

// extractDocxText turns word/document.xml into plain text, one paragraph
// per line.
func extractDocxText(reader *bytes.Reader) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content)), nil
}
