package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"tweet-collection/internal/domain"
	"tweet-collection/pkg/log"
)

// RecordSource yields parsed feed records one at a time. Next returns
// io.EOF once the feed is exhausted. Sources are single-pass: reading the
// feed again requires opening a fresh source.
type RecordSource interface {
	Next() (*domain.RawTweet, error)
}

// CollectionWriter persists a finished, sorted collection.
type CollectionWriter interface {
	Write(path string, posts []domain.Post) error
}

// BuildCollectionUseCase turns a feed of raw records into the XML
// collection document: dedup by id, drop retweet wrappers in favor of
// their originals, inline quoted tweets, sort chronologically, write.
type BuildCollectionUseCase struct {
	writer   CollectionWriter
	maxDepth int
}

// NewBuildCollectionUseCase creates a new BuildCollectionUseCase. maxDepth
// bounds retweet/quote recursion per top-level record.
func NewBuildCollectionUseCase(writer CollectionWriter, maxDepth int) *BuildCollectionUseCase {
	return &BuildCollectionUseCase{writer: writer, maxDepth: maxDepth}
}

// buildState carries the per-build accumulation: the set of identifiers
// already resolved and the posts collected so far. A fresh state is
// created for every Execute call, so the use case value itself is
// reusable across builds.
type buildState struct {
	seen  map[int64]struct{}
	posts []domain.Post
}

// Execute drains source, resolves every record, sorts the resulting posts
// by ascending created_at and writes them to outputPath. It returns the
// number of posts written.
//
// Any malformed record, missing field or unparsable timestamp aborts the
// whole build before anything is written. Duplicate identifiers are not
// errors; extra occurrences are dropped silently. Because sources are
// single-pass, calling Execute again with an already-drained source yields
// an empty (but valid) document; that case is logged as a warning rather
// than failing, since an empty feed is indistinguishable from it.
func (uc *BuildCollectionUseCase) Execute(ctx context.Context, source RecordSource, outputPath string) (int, error) {
	state := &buildState{seen: make(map[int64]struct{})}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		record, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}

		if err := uc.resolve(state, record, 0); err != nil {
			return 0, err
		}
	}

	if len(state.posts) == 0 {
		log.GlobalWarn("feed produced no posts, writing an empty collection", "output", outputPath)
	}

	if err := sortByCreatedAt(state.posts); err != nil {
		return 0, err
	}

	if err := uc.writer.Write(outputPath, state.posts); err != nil {
		return 0, err
	}
	return len(state.posts), nil
}

// resolve applies the resolution rules to one raw record. The identifier
// is claimed in the seen set before any recursion, so a record reachable
// through several paths (top-level line and someone else's quoted_status,
// say) is resolved exactly once.
func (uc *BuildCollectionUseCase) resolve(state *buildState, record *domain.RawTweet, depth int) error {
	if depth > uc.maxDepth {
		return fmt.Errorf("%w: depth %d", domain.ErrDepthExceeded, depth)
	}
	if record.ID == nil {
		return fmt.Errorf("%w: id", domain.ErrMissingField)
	}

	if _, dup := state.seen[*record.ID]; dup {
		return nil
	}
	state.seen[*record.ID] = struct{}{}

	// A retweet wrapper never becomes a post; only the wrapped original
	// survives.
	if record.Kind() == domain.Retweet {
		return uc.resolve(state, record.Retweeted, depth+1)
	}

	post, err := buildPost(record)
	if err != nil {
		return err
	}
	state.posts = append(state.posts, *post)

	// The quoted record is resolved as a sibling: it gets its own post,
	// ordered purely by its own timestamp.
	if record.Kind() == domain.Quote {
		return uc.resolve(state, record.Quoted, depth+1)
	}
	return nil
}

// buildPost constructs the immutable output unit for one non-retweet
// record.
func buildPost(record *domain.RawTweet) (*domain.Post, error) {
	if record.IDStr == "" {
		return nil, fmt.Errorf("%w: id_str (id %d)", domain.ErrMissingField, *record.ID)
	}

	post := &domain.Post{
		ID:        record.IDStr,
		CreatedAt: record.CreatedAt,
	}

	if record.Quoted != nil {
		if record.Quoted.IDStr == "" {
			return nil, fmt.Errorf("%w: quoted_status.id_str (tweet %s)", domain.ErrMissingField, record.IDStr)
		}
		post.QuotedFrom = record.Quoted.IDStr
	}

	text, entities, err := effectiveContent(record)
	if err != nil {
		return nil, err
	}
	post.Body = text

	if record.User == nil {
		return nil, fmt.Errorf("%w: user (tweet %s)", domain.ErrMissingField, record.IDStr)
	}
	post.Author = domain.UserRef{ScreenName: record.User.ScreenName, ID: record.User.IDStr}

	for _, h := range entities.Hashtags {
		post.Hashtags = append(post.Hashtags, h.Text)
	}
	for _, m := range entities.UserMentions {
		post.Mentions = append(post.Mentions, domain.UserRef{ScreenName: m.ScreenName, ID: m.IDStr})
	}
	for _, u := range entities.URLs {
		post.URLs = append(post.URLs, u.ExpandedURL)
	}

	return post, nil
}

// effectiveContent picks the authoritative text and entities: the
// extended_tweet branch when the record is truncated, the top-level fields
// otherwise.
func effectiveContent(record *domain.RawTweet) (string, *domain.RawEntities, error) {
	if record.Truncated {
		if record.Extended == nil || record.Extended.FullText == nil {
			return "", nil, fmt.Errorf("%w: extended_tweet.full_text (tweet %s)", domain.ErrMissingField, record.IDStr)
		}
		if record.Extended.Entities == nil {
			return "", nil, fmt.Errorf("%w: extended_tweet.entities (tweet %s)", domain.ErrMissingField, record.IDStr)
		}
		return *record.Extended.FullText, record.Extended.Entities, nil
	}

	if record.Text == nil {
		return "", nil, fmt.Errorf("%w: text (tweet %s)", domain.ErrMissingField, record.IDStr)
	}
	if record.Entities == nil {
		return "", nil, fmt.Errorf("%w: entities (tweet %s)", domain.ErrMissingField, record.IDStr)
	}
	return *record.Text, record.Entities, nil
}

// sortByCreatedAt orders posts ascending by parsed timestamp. Every
// timestamp is parsed up front: one bad value fails the whole build.
func sortByCreatedAt(posts []domain.Post) error {
	keys := make([]time.Time, len(posts))
	for i := range posts {
		ts, err := posts[i].ParsedCreatedAt()
		if err != nil {
			return err
		}
		keys[i] = ts
	}

	order := make([]int, len(posts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].Before(keys[order[b]])
	})

	sorted := make([]domain.Post, len(posts))
	for i, j := range order {
		sorted[i] = posts[j]
	}
	copy(posts, sorted)
	return nil
}
