// Package fixtures provides NDJSON feed fixtures for testing the pipeline.
package fixtures

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a feed record under construction, shaped like the serialized
// JSON object.
type Record map[string]any

// Tweet returns a minimal well-formed original tweet record: identifiers,
// timestamp, text, truncated=false, an author and empty entities.
func Tweet(id int64, createdAt, text string) Record {
	idStr := strconv.FormatInt(id, 10)
	return Record{
		"id":         id,
		"id_str":     idStr,
		"created_at": createdAt,
		"text":       text,
		"truncated":  false,
		"user": map[string]any{
			"screen_name": "user_" + idStr,
			"id_str":      "9" + idStr,
		},
		"entities": map[string]any{
			"hashtags":      []any{},
			"user_mentions": []any{},
			"urls":          []any{},
		},
	}
}

// WithEntities replaces the record's top-level entities.
func WithEntities(r Record, hashtags []string, mentions []map[string]any, urls []string) Record {
	tags := make([]any, 0, len(hashtags))
	for _, h := range hashtags {
		tags = append(tags, map[string]any{"text": h})
	}
	users := make([]any, 0, len(mentions))
	for _, m := range mentions {
		users = append(users, m)
	}
	links := make([]any, 0, len(urls))
	for _, u := range urls {
		links = append(links, map[string]any{"expanded_url": u})
	}
	r["entities"] = map[string]any{
		"hashtags":      tags,
		"user_mentions": users,
		"urls":          links,
	}
	return r
}

// Retweet wraps original in a retweet record carrying its own identity.
func Retweet(id int64, createdAt string, original Record) Record {
	r := Tweet(id, createdAt, "RT @someone: ...")
	r["retweeted_status"] = original
	return r
}

// Quote returns a tweet record quoting another record.
func Quote(id int64, createdAt, text string, quoted Record) Record {
	r := Tweet(id, createdAt, text)
	r["quoted_status"] = quoted
	return r
}

// Truncated returns a tweet whose authoritative text and entities live
// under extended_tweet.
func Truncated(id int64, createdAt, shortText, fullText string) Record {
	r := Tweet(id, createdAt, shortText)
	r["truncated"] = true
	r["extended_tweet"] = map[string]any{
		"full_text": fullText,
		"entities": map[string]any{
			"hashtags":      []any{},
			"user_mentions": []any{},
			"urls":          []any{},
		},
	}
	return r
}

// Feed serializes records into NDJSON, one object per line.
func Feed(records ...Record) string {
	var b strings.Builder
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			panic(err) // fixture construction bug, not a test condition
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}
