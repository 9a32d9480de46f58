package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Text extracts the plain text of an uploaded document. Dispatch is by file
// extension: plain text files are read as UTF-8, PDFs go through pdftotext.
// Anything else is rejected.
func Text(ctx context.Context, filename string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return textFromPlain(content), nil
	case ".pdf":
		return textFromPDF(ctx, content)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filename)
	}
}

func textFromPlain(content []byte) string {
	return Sanitize(string(content))
}

// Sanitize strips invalid UTF-8 sequences and control bytes from text,
// keeping tabs and line breaks. It applies to every text entering an
// analysis, whether extracted from a file or submitted directly.
func Sanitize(text string) string {
	text = strings.ToValidUTF8(text, "")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
}
