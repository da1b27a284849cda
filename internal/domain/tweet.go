// Package domain contains the core business entities and rules.
package domain

import (
	"fmt"
	"time"
)

// CreatedAtLayout is the timestamp format carried by the feed's created_at
// field, e.g. "Mon Jan 02 15:04:05 +0000 2006".
const CreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// RawTweet is one record of a collected feed (as exported by tools like
// FireAnt), decoded from a single JSON line. Field presence is significant
// for the resolution rules, so optional fields are pointers: an absent
// field is nil, never a zero value.
type RawTweet struct {
	ID        *int64         `json:"id"`
	IDStr     string         `json:"id_str"`
	CreatedAt string         `json:"created_at"`
	Text      *string        `json:"text"`
	Truncated bool           `json:"truncated"`
	User      *RawUser       `json:"user"`
	Entities  *RawEntities   `json:"entities"`
	Extended  *ExtendedTweet `json:"extended_tweet"`
	Retweeted *RawTweet      `json:"retweeted_status"`
	Quoted    *RawTweet      `json:"quoted_status"`
}

// RawUser is the author object nested in a feed record, also used for
// mentioned users inside entities.
type RawUser struct {
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
}

// RawEntities holds the linked entities of a record.
type RawEntities struct {
	Hashtags     []Hashtag   `json:"hashtags"`
	UserMentions []RawUser   `json:"user_mentions"`
	URLs         []URLEntity `json:"urls"`
}

// Hashtag is a single hashtag entry.
type Hashtag struct {
	Text string `json:"text"`
}

// URLEntity is a single URL entry.
type URLEntity struct {
	ExpandedURL string `json:"expanded_url"`
}

// ExtendedTweet carries the authoritative text and entities of a truncated
// record.
type ExtendedTweet struct {
	FullText *string      `json:"full_text"`
	Entities *RawEntities `json:"entities"`
}

// RecordKind classifies how a record must be resolved.
type RecordKind int

const (
	// Original produces exactly one post.
	Original RecordKind = iota
	// Retweet is a content-free wrapper; only the wrapped original is kept.
	Retweet
	// Quote produces a post of its own and links the quoted record.
	Quote
)

// Kind reports the resolution variant of the record. A record that is both
// a retweet and a quote resolves as a retweet: the wrapper carries no
// content of its own.
func (t *RawTweet) Kind() RecordKind {
	switch {
	case t.Retweeted != nil:
		return Retweet
	case t.Quoted != nil:
		return Quote
	default:
		return Original
	}
}

// Post is the output unit of a build: one resolved, non-retweet tweet.
// Built once, never mutated afterward.
type Post struct {
	ID         string
	CreatedAt  string // verbatim feed value; parsed only for sorting
	QuotedFrom string // id of the quoted post, empty if none
	Body       string
	Author     UserRef
	Hashtags   []string
	Mentions   []UserRef
	URLs       []string
}

// UserRef identifies a user in the output document.
type UserRef struct {
	ScreenName string
	ID         string
}

// ParsedCreatedAt parses the post's timestamp with CreatedAtLayout.
func (p *Post) ParsedCreatedAt() (time.Time, error) {
	ts, err := time.Parse(CreatedAtLayout, p.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: tweet %s: %q", ErrBadTimestamp, p.ID, p.CreatedAt)
	}
	return ts, nil
}
