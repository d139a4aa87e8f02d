package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	s3client "docuchat-backend/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ledongthuc/pdf"
)

// FetchToLocalTemp downloads a local or s3:// path to a temporary file
// and returns the path with a cleanup function.
func FetchToLocalTemp(ctx context.Context, filePath string) (string, func(), error) {
	noop := func() {}

	if strings.HasPrefix(filePath, "s3://") {
		u, err := url.Parse(filePath)
		if err != nil {
			return "", noop, err
		}
		bucket := u.Host
		key := strings.TrimPrefix(u.Path, "/")

		cli, err := s3client.GetClient()
		if err != nil {
			return "", noop, err
		}
		tmp, err := os.CreateTemp("", "ingest-*"+filepath.Ext(key))
		if err != nil {
			return "", noop, err
		}
		out, err := cli.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", noop, err
		}
		defer out.Body.Close()
		if _, err := io.Copy(tmp, out.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", noop, err
		}
		tmp.Close()
		return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		cwd, _ := os.Getwd()
		abs = filepath.Join(cwd, filePath)
	}
	src, err := os.Open(abs)
	if err != nil {
		return "", noop, err
	}
	defer src.Close()
	tmp, err := os.CreateTemp("", "ingest-*"+filepath.Ext(abs))
	if err != nil {
		return "", noop, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, err
	}
	tmp.Close()
	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}

// ExtractText pulls raw text out of a fetched file. PDFs are read page
// by page; anything else is treated as UTF-8 text. The result is raw in
// the chunking engine's sense: cleaning is the chunker's job, this only
// guarantees printable UTF-8.
func ExtractText(localPath string) (string, error) {
	if strings.EqualFold(filepath.Ext(localPath), ".pdf") {
		return extractPDFText(localPath)
	}
	return extractPlainText(localPath)
}

func extractPDFText(localPath string) (string, error) {
	f, r, err := pdf.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than failing the document.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	content := sanitizeUTF8Printable(b.String())
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("empty content")
	}
	return content, nil
}

func extractPlainText(localPath string) (string, error) {
	raw, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	var content string
	if utf8.Valid(raw) {
		content = string(raw)
	} else {
		content = string([]rune(string(raw)))
	}
	content = sanitizeUTF8Printable(content)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("empty content")
	}
	return content, nil
}

// sanitizeUTF8Printable removes the BOM and non-printable runes, keeping
// common whitespace.
func sanitizeUTF8Printable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\uFEFF' {
			continue
		}
		if r == unicode.ReplacementChar {
			continue
		}
		if r == '\n' || r == '\t' || r == '\r' {
			// keep
		} else if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
