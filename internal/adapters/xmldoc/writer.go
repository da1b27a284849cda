// Package xmldoc serializes resolved posts into the tweets XML document
// and reads word counts back out of one.
package xmldoc

import (
	"encoding/xml"
	"fmt"
	"os"

	"tweet-collection/internal/domain"
)

// XML shapes of the output document. Field order inside detailsElem fixes
// the child order: user, hashtags, user_mentions, urls.

type document struct {
	XMLName xml.Name    `xml:"tweets"`
	Tweets  []tweetElem `xml:"tweet"`
}

type tweetElem struct {
	ID         string      `xml:"id,attr"`
	CreatedAt  string      `xml:"created_at,attr"`
	QuotedFrom string      `xml:"quoted_from,attr,omitempty"`
	Body       string      `xml:"body"`
	Details    detailsElem `xml:"details"`
}

type detailsElem struct {
	User     userElem     `xml:"user"`
	Hashtags []string     `xml:"hashtag"`
	Mentions mentionsElem `xml:"user_mentions"`
	URLs     []string     `xml:"url"`
}

type userElem struct {
	ScreenName string `xml:"screen_name,attr"`
	ID         string `xml:"id,attr"`
}

// mentionsElem is always emitted, even when it holds no users.
type mentionsElem struct {
	Users []userElem `xml:"user"`
}

// Writer serializes a finished collection to a file.
type Writer struct{}

// NewWriter creates a new collection writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write marshals posts, in the order given, into a pretty-printed UTF-8
// XML document with a leading declaration and writes it to path,
// overwriting any existing file. The document is built fully in memory
// first, so a failed build never leaves partial output behind.
func (w *Writer) Write(path string, posts []domain.Post) error {
	doc := document{Tweets: make([]tweetElem, 0, len(posts))}
	for i := range posts {
		doc.Tweets = append(doc.Tweets, toElem(&posts[i]))
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

func toElem(p *domain.Post) tweetElem {
	elem := tweetElem{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		QuotedFrom: p.QuotedFrom,
		Body:       p.Body,
		Details: detailsElem{
			User:     userElem{ScreenName: p.Author.ScreenName, ID: p.Author.ID},
			Hashtags: p.Hashtags,
		},
	}
	for _, m := range p.Mentions {
		elem.Details.Mentions.Users = append(elem.Details.Mentions.Users, userElem{
			ScreenName: m.ScreenName,
			ID:         m.ID,
		})
	}
	elem.Details.URLs = p.URLs
	return elem
}
