package usecases_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"tweet-collection/internal/domain"
	"tweet-collection/internal/usecases"
)

// sliceSource is a mock RecordSource yielding a fixed slice of records.
type sliceSource struct {
	records []*domain.RawTweet
	next    int
	err     error // returned after the slice is drained, instead of io.EOF
}

func (s *sliceSource) Next() (*domain.RawTweet, error) {
	if s.next >= len(s.records) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	r := s.records[s.next]
	s.next++
	return r, nil
}

// captureWriter is a mock CollectionWriter recording what it was given.
type captureWriter struct {
	path  string
	posts []domain.Post
	calls int
	err   error
}

func (w *captureWriter) Write(path string, posts []domain.Post) error {
	w.calls++
	w.path = path
	w.posts = posts
	return w.err
}

func strptr(s string) *string { return &s }
func idptr(v int64) *int64    { return &v }

// original builds a minimal valid non-retweet record.
func original(id int64, createdAt, text string) *domain.RawTweet {
	idStr := strconv.FormatInt(id, 10)
	return &domain.RawTweet{
		ID:        idptr(id),
		IDStr:     idStr,
		CreatedAt: createdAt,
		Text:      strptr(text),
		User:      &domain.RawUser{ScreenName: "user_" + idStr, IDStr: "9" + idStr},
		Entities:  &domain.RawEntities{},
	}
}

func execute(t *testing.T, records ...*domain.RawTweet) (*captureWriter, int, error) {
	t.Helper()
	writer := &captureWriter{}
	uc := usecases.NewBuildCollectionUseCase(writer, 16)
	count, err := uc.Execute(context.Background(), &sliceSource{records: records}, "out.xml")
	return writer, count, err
}

func TestExecute_SortsByCreatedAtAscending(t *testing.T) {
	// Arrange: feed order is newest first.
	writer, count, err := execute(t,
		original(2, "Thu Jan 02 10:00:00 +0000 2020", "later"),
		original(1, "Wed Jan 01 10:00:00 +0000 2020", "earlier"),
	)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 2 {
		t.Fatalf("got %d posts, want 2", count)
	}
	if writer.posts[0].ID != "1" || writer.posts[1].ID != "2" {
		t.Errorf("order: got [%s %s], want [1 2]", writer.posts[0].ID, writer.posts[1].ID)
	}
	if writer.path != "out.xml" {
		t.Errorf("path: got %v, want out.xml", writer.path)
	}
}

func TestExecute_DuplicateLines_EmitOnePost(t *testing.T) {
	// Act
	writer, count, err := execute(t,
		original(1, "Wed Jan 01 10:00:00 +0000 2020", "same"),
		original(1, "Wed Jan 01 10:00:00 +0000 2020", "same"),
	)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 1 || len(writer.posts) != 1 {
		t.Errorf("got %d posts, want 1", len(writer.posts))
	}
}

func TestExecute_RetweetWrapper_EmitsOnlyOriginal(t *testing.T) {
	// Arrange: wrapper 10 retweets original 1; 1 appears nowhere else.
	wrapped := original(1, "Wed Jan 01 10:00:00 +0000 2020", "the original")
	wrapper := &domain.RawTweet{
		ID:        idptr(10),
		IDStr:     "10",
		CreatedAt: "Thu Jan 02 10:00:00 +0000 2020",
		Retweeted: wrapped,
	}

	// Act
	writer, count, err := execute(t, wrapper)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d posts, want 1", count)
	}
	post := writer.posts[0]
	if post.ID != "1" {
		t.Errorf("post id: got %v, want the wrapped original's 1", post.ID)
	}
	if post.Body != "the original" {
		t.Errorf("body: got %q", post.Body)
	}
	if post.CreatedAt != "Wed Jan 01 10:00:00 +0000 2020" {
		t.Errorf("created_at should be the original's, got %v", post.CreatedAt)
	}
}

func TestExecute_RetweetOfAlreadySeenOriginal_AddsNothing(t *testing.T) {
	// Arrange
	seen := original(1, "Wed Jan 01 10:00:00 +0000 2020", "first")
	wrapper := &domain.RawTweet{
		ID:        idptr(10),
		IDStr:     "10",
		CreatedAt: "Thu Jan 02 10:00:00 +0000 2020",
		Retweeted: original(1, "Wed Jan 01 10:00:00 +0000 2020", "first"),
	}

	// Act
	_, count, err := execute(t, seen, wrapper)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d posts, want 1", count)
	}
}

func TestExecute_Quote_EmitsBothAndLinks(t *testing.T) {
	// Arrange: B (id 2) quotes A (id 1); A is only reachable through B.
	quoted := original(1, "Wed Jan 01 10:00:00 +0000 2020", "quoted content")
	quoting := original(2, "Thu Jan 02 10:00:00 +0000 2020", "quoting content")
	quoting.Quoted = quoted

	// Act
	writer, count, err := execute(t, quoting)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 2 {
		t.Fatalf("got %d posts, want 2", count)
	}
	// Chronological: the quoted post is older, so it comes first.
	if writer.posts[0].ID != "1" || writer.posts[1].ID != "2" {
		t.Errorf("order: got [%s %s], want [1 2]", writer.posts[0].ID, writer.posts[1].ID)
	}
	if writer.posts[1].QuotedFrom != "1" {
		t.Errorf("quoted_from: got %q, want 1", writer.posts[1].QuotedFrom)
	}
	if writer.posts[0].QuotedFrom != "" {
		t.Errorf("quoted post should not carry quoted_from, got %q", writer.posts[0].QuotedFrom)
	}
}

func TestExecute_QuotedPostAlsoTopLevel_EmitsOnce(t *testing.T) {
	// Arrange: A appears as its own line and as B's quoted_status.
	a := original(1, "Wed Jan 01 10:00:00 +0000 2020", "a")
	b := original(2, "Thu Jan 02 10:00:00 +0000 2020", "b")
	b.Quoted = original(1, "Wed Jan 01 10:00:00 +0000 2020", "a")

	// Act
	writer, count, err := execute(t, a, b)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 2 {
		t.Fatalf("got %d posts, want 2", count)
	}
	if writer.posts[1].QuotedFrom != "1" {
		t.Errorf("quote link must survive dedup, got %q", writer.posts[1].QuotedFrom)
	}
}

func TestExecute_QuotedRetweet_ResolvesToWrappedOriginal(t *testing.T) {
	// Arrange: B quotes R, R is a retweet wrapper of S. Only B and S emit.
	s := original(1, "Wed Jan 01 10:00:00 +0000 2020", "s")
	r := &domain.RawTweet{
		ID:        idptr(10),
		IDStr:     "10",
		CreatedAt: "Thu Jan 02 10:00:00 +0000 2020",
		Retweeted: s,
	}
	b := original(2, "Fri Jan 03 10:00:00 +0000 2020", "b")
	b.Quoted = r

	// Act
	writer, count, err := execute(t, b)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 2 {
		t.Fatalf("got %d posts, want 2", count)
	}
	if writer.posts[0].ID != "1" || writer.posts[1].ID != "2" {
		t.Errorf("order: got [%s %s], want [1 2]", writer.posts[0].ID, writer.posts[1].ID)
	}
	// quoted_from still names the wrapper's id; the wrapper itself never
	// becomes a post.
	if writer.posts[1].QuotedFrom != "10" {
		t.Errorf("quoted_from: got %q, want 10", writer.posts[1].QuotedFrom)
	}
}

func TestExecute_TruncatedRecord_UsesExtendedTweet(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "short...")
	record.Truncated = true
	record.Extended = &domain.ExtendedTweet{
		FullText: strptr("hello world foo"),
		Entities: &domain.RawEntities{
			Hashtags: []domain.Hashtag{{Text: "full"}},
		},
	}
	// A top-level hashtag that must be ignored for truncated records.
	record.Entities = &domain.RawEntities{Hashtags: []domain.Hashtag{{Text: "short"}}}

	// Act
	writer, _, err := execute(t, record)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	post := writer.posts[0]
	if post.Body != "hello world foo" {
		t.Errorf("body: got %q, want the extended full_text", post.Body)
	}
	if len(post.Hashtags) != 1 || post.Hashtags[0] != "full" {
		t.Errorf("hashtags: got %v, want the extended entities", post.Hashtags)
	}
}

func TestExecute_EntitiesAreMapped(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "text")
	record.Entities = &domain.RawEntities{
		Hashtags:     []domain.Hashtag{{Text: "golang"}},
		UserMentions: []domain.RawUser{{ScreenName: "bob", IDStr: "22"}},
		URLs:         []domain.URLEntity{{ExpandedURL: "https://example.com"}},
	}

	// Act
	writer, _, err := execute(t, record)

	// Assert
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	post := writer.posts[0]
	if len(post.Hashtags) != 1 || post.Hashtags[0] != "golang" {
		t.Errorf("hashtags: got %v", post.Hashtags)
	}
	if len(post.Mentions) != 1 || post.Mentions[0].ScreenName != "bob" || post.Mentions[0].ID != "22" {
		t.Errorf("mentions: got %+v", post.Mentions)
	}
	if len(post.URLs) != 1 || post.URLs[0] != "https://example.com" {
		t.Errorf("urls: got %v", post.URLs)
	}
}

func TestExecute_MissingID_Fails(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "text")
	record.ID = nil

	// Act
	writer, _, err := execute(t, record)

	// Assert
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	if writer.calls != 0 {
		t.Error("nothing may be written after a failed build")
	}
}

func TestExecute_MissingText_Fails(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "text")
	record.Text = nil

	// Act
	_, _, err := execute(t, record)

	// Assert
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

func TestExecute_TruncatedWithoutExtended_Fails(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "short...")
	record.Truncated = true

	// Act
	_, _, err := execute(t, record)

	// Assert
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

func TestExecute_MissingUser_Fails(t *testing.T) {
	// Arrange
	record := original(1, "Wed Jan 01 10:00:00 +0000 2020", "text")
	record.User = nil

	// Act
	_, _, err := execute(t, record)

	// Assert
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

func TestExecute_MalformedQuotedRecord_PropagatesError(t *testing.T) {
	// A quoted record missing its own text fails the build just like a
	// top-level record would.
	quoting := original(2, "Thu Jan 02 10:00:00 +0000 2020", "b")
	broken := original(1, "Wed Jan 01 10:00:00 +0000 2020", "a")
	broken.Text = nil
	quoting.Quoted = broken

	// Act
	writer, _, err := execute(t, quoting)

	// Assert
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	if writer.calls != 0 {
		t.Error("nothing may be written after a failed build")
	}
}

func TestExecute_BadTimestamp_FailsWithoutWriting(t *testing.T) {
	// Arrange
	writer, _, err := execute(t, original(1, "2020-01-01T10:00:00Z", "wrong format"))

	// Assert
	if !errors.Is(err, domain.ErrBadTimestamp) {
		t.Fatalf("got %v, want ErrBadTimestamp", err)
	}
	if writer.calls != 0 {
		t.Error("nothing may be written after a failed build")
	}
}

func TestExecute_QuoteChainDeeperThanLimit_Fails(t *testing.T) {
	// Arrange: a quote chain of depth 4 against a limit of 3.
	deepest := original(4, "Wed Jan 01 10:00:00 +0000 2020", "d")
	chain := deepest
	for id := int64(3); id >= 1; id-- {
		parent := original(id, "Wed Jan 01 10:00:00 +0000 2020", "q")
		parent.Quoted = chain
		chain = parent
	}
	writer := &captureWriter{}
	uc := usecases.NewBuildCollectionUseCase(writer, 3)

	// Act
	_, err := uc.Execute(context.Background(), &sliceSource{records: []*domain.RawTweet{chain}}, "out.xml")

	// Assert
	if !errors.Is(err, domain.ErrDepthExceeded) {
		t.Fatalf("got %v, want ErrDepthExceeded", err)
	}
	if writer.calls != 0 {
		t.Error("nothing may be written after a failed build")
	}
}

func TestExecute_SourceErrorPropagates(t *testing.T) {
	// Arrange
	sourceErr := errors.New("disk died")
	writer := &captureWriter{}
	uc := usecases.NewBuildCollectionUseCase(writer, 16)

	// Act
	_, err := uc.Execute(context.Background(), &sliceSource{err: sourceErr}, "out.xml")

	// Assert
	if !errors.Is(err, sourceErr) {
		t.Fatalf("got %v, want the source error", err)
	}
	if writer.calls != 0 {
		t.Error("nothing may be written after a failed build")
	}
}

func TestExecute_WriterErrorPropagates(t *testing.T) {
	// Arrange
	writeErr := errors.New("disk full")
	writer := &captureWriter{err: writeErr}
	uc := usecases.NewBuildCollectionUseCase(writer, 16)
	source := &sliceSource{records: []*domain.RawTweet{
		original(1, "Wed Jan 01 10:00:00 +0000 2020", "text"),
	}}

	// Act
	_, err := uc.Execute(context.Background(), source, "out.xml")

	// Assert
	if !errors.Is(err, writeErr) {
		t.Fatalf("got %v, want the writer error", err)
	}
}

func TestExecute_CancelledContext_Fails(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	writer := &captureWriter{}
	uc := usecases.NewBuildCollectionUseCase(writer, 16)

	// Act
	_, err := uc.Execute(ctx, &sliceSource{}, "out.xml")

	// Assert
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestExecute_ExhaustedSource_WritesEmptyDocument(t *testing.T) {
	// A second Execute over the same drained source cannot re-read the
	// feed; it produces an empty but valid collection.
	writer := &captureWriter{}
	uc := usecases.NewBuildCollectionUseCase(writer, 16)
	source := &sliceSource{records: []*domain.RawTweet{
		original(1, "Wed Jan 01 10:00:00 +0000 2020", "text"),
	}}

	if _, err := uc.Execute(context.Background(), source, "out.xml"); err != nil {
		t.Fatalf("first execute: %v", err)
	}

	// Act
	count, err := uc.Execute(context.Background(), source, "out.xml")

	// Assert
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if count != 0 || len(writer.posts) != 0 {
		t.Errorf("got %d posts on second pass, want 0", count)
	}
}
