// Package extract converts uploaded resume and job description files to plain text.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// Supported MIME types.
const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionMIME = map[string]string{
	".txt":  MIMEPlain,
	".text": MIMEPlain,
	".md":   MIMEPlain,
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
}

// DetectMIME picks the document type from the file extension, falling back to
// the declared Content-Type (parameters such as charset are ignored).
func DetectMIME(filename, contentType string) string {
	if m, ok := extensionMIME[strings.ToLower(filepath.Ext(filename))]; ok {
		return m
	}
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// Text extracts the plain text of a document.
func Text(mimeType string, data []byte) (string, error) {
	switch mimeType {
	case MIMEPlain:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: plain text is not valid UTF-8", domain.ErrUnsupportedFormat)
		}
		return string(data), nil
	case MIMEPDF:
		return pdfText(data)
	case MIMEDocx:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, mimeType)
	}
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %w", domain.ErrUnsupportedFormat, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %w", domain.ErrUnsupportedFormat, i, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

var (
	// docx paragraph and line breaks become whitespace so words do not fuse.
	docxBreak = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag    = regexp.MustCompile(`<[^>]+>`)
)

func docxText(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %w", domain.ErrUnsupportedFormat, err)
	}
	defer func() { _ = r.Close() }()

	return xmlToText(r.Editable().GetContent()), nil
}

func xmlToText(content string) string {
	content = docxBreak.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
