package doctext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlain = "text/plain"
)

var (
	ErrUnsupportedType = errors.New("doctext: unsupported file type")
	ErrEmpty           = errors.New("doctext: empty file")
	ErrNoText          = errors.New("doctext: no text extracted")
)

// DetectMime settles the type of an upload. Magic bytes win over the declared
// header, which wins over the file extension.
func DetectMime(filename, declared string, data []byte) string {
	switch {
	case isPDF(data):
		return MimePDF
	case isZip(data):
		return MimeDOCX
	}
	mt := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case MimePDF, MimeDOCX, MimePlain:
		return mt
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt", ".md":
		return MimePlain
	}
	if isProbablyText(data) {
		return MimePlain
	}
	return mt
}

// Extract returns the plain text of a résumé file with whitespace collapsed.
func Extract(mime string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	var (
		text string
		err  error
	)
	switch mime {
	case MimePlain:
		text = string(data)
	case MimePDF:
		if !isPDF(data) {
			return "", fmt.Errorf("doctext: file claims pdf but missing %%PDF header: %w", ErrUnsupportedType)
		}
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}
	if err != nil {
		return "", err
	}
	text = collapseWhitespace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("doctext: pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("doctext: pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("doctext: pdf read: %w", err)
	}
	return string(b), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("doctext: docx reader: %w", err)
	}
	defer doc.Close()
	return textFromWordXML(doc.Editable().GetContent()), nil
}

// textFromWordXML gathers <w:t> runs, one space between runs and a newline
// per paragraph.
func textFromWordXML(content string) string {
	dec := xml.NewDecoder(strings.NewReader(content))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local != "t" {
				continue
			}
			var v string
			if err := dec.DecodeElement(&v, &se); err == nil && v != "" {
				out.WriteString(v)
				out.WriteString(" ")
			}
		case xml.EndElement:
			if se.Name.Local == "p" {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isProbablyText(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	sample := b[:min(len(b), 4096)]
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

// Paragraph breaks survive; runs of other whitespace become one space.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if f := strings.Fields(line); len(f) > 0 {
			out = append(out, strings.Join(f, " "))
		}
	}
	return strings.Join(out, "\n")
}
