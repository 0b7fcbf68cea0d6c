package document

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// Strategy is one way of turning a file into raw text.
type Strategy struct {
	Name    string
	Convert func(ctx context.Context, path string) (string, error)
}

var reXMLTags = regexp.MustCompile(`<[^>]+>`)

func pdfPagesStrategy() Strategy {
	return Strategy{Name: "pdf-pages", Convert: convertPDFPages}
}

func docconvPathStrategy() Strategy {
	return Strategy{Name: "docconv", Convert: func(_ context.Context, path string) (string, error) {
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", err
		}
		return res.Body, nil
	}}
}

func docxStrategy() Strategy {
	return Strategy{Name: "docconv-docx", Convert: func(_ context.Context, path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		body, _, err := docconv.ConvertDocx(f)
		if err != nil {
			return "", err
		}
		return body, nil
	}}
}

func docxXMLStrategy() Strategy {
	return Strategy{Name: "docx-xml", Convert: convertDocxXML}
}

func plainTextStrategy() Strategy {
	return Strategy{Name: "plain", Convert: func(_ context.Context, path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}}
}

// convertPDFPages concatenates the plain text of every page.
// The pdf reader panics on some malformed files, so panics become errors.
func convertPDFPages(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// convertDocxXML reads word/document.xml directly and strips the markup.
func convertDocxXML(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		xml := string(data)
		xml = strings.ReplaceAll(xml, "</w:p>", "\n")
		xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
		return reXMLTags.ReplaceAllString(xml, " "), nil
	}
	return "", errors.New("no word/document.xml in archive")
}
