package scrape

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReadLocal reads the page behind a file:// URL (or plain path) and returns its text
func ReadLocal(url string) (string, error) {
	path := strings.TrimPrefix(url, "file://")

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading local file: %w", err)
	}

	return StripMarkup(bytes.NewReader(data)), nil
}

// StripMarkup drops tags, scripts and styles and collapses whitespace
func StripMarkup(r io.Reader) string {
	z := html.NewTokenizer(r)

	var parts []string
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed document; either way we keep what was read
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.StartTagToken:
			if isRawText(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawText(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	a := atom.Lookup(name)
	return a == atom.Script || a == atom.Style
}
