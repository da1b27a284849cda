package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"tweet-collection/internal/domain"
)

// WordCounter scans a collection document for body text.
type WordCounter struct{}

// NewWordCounter creates a new word counter.
func NewWordCounter() *WordCounter {
	return &WordCounter{}
}

// CountBodyWords parses the XML file at path and returns the total number
// of whitespace-separated words across every body element, wherever it
// appears in the tree. A body with no text contributes zero. The file is
// never modified; re-running on the same file yields the same total.
func (c *WordCounter) CountBodyWords(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open collection: %w", err)
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	total := 0
	bodyDepth := 0 // >0 while inside a body subtree
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if bodyDepth > 0 {
				bodyDepth++
			} else if t.Name.Local == "body" {
				bodyDepth = 1
				text.Reset()
			}
		case xml.EndElement:
			if bodyDepth > 0 {
				bodyDepth--
				if bodyDepth == 0 {
					total += len(strings.Fields(text.String()))
				}
			}
		case xml.CharData:
			if bodyDepth > 0 {
				text.Write(t)
			}
		}
	}

	return total, nil
}
