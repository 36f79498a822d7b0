package extract

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

var (
	ErrInputNotFound     = errors.New("input document not found")
	ErrMalformedDocument = errors.New("malformed document")
)

// ParseFile opens a saved exam page and parses it into a navigable tree.
func ParseFile(path string) (*goquery.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrInputNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	defer f.Close()

	doc, err := ParseHTML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %q: %w", path, err)
	}
	return doc, nil
}

// ParseHTML decodes r using the charset declared by the page (falling back
// to UTF-8) and builds the document tree.
func ParseHTML(r io.Reader) (*goquery.Document, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("%w: detect charset: %v", ErrMalformedDocument, err)
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Find("body").Length() == 0 {
		return nil, fmt.Errorf("%w: no body element", ErrMalformedDocument)
	}

	return doc, nil
}
