package usecases

import (
	"context"

	"tweet-collection/pkg/log"
)

// BodyCounter sums the word counts over every body element of a collection
// document.
type BodyCounter interface {
	CountBodyWords(path string) (int, error)
}

// CountWordsUseCase reports the total word count of a written collection.
type CountWordsUseCase struct {
	counter BodyCounter
}

// NewCountWordsUseCase creates a new CountWordsUseCase.
func NewCountWordsUseCase(counter BodyCounter) *CountWordsUseCase {
	return &CountWordsUseCase{counter: counter}
}

// Execute counts the words in the collection at path. It has no write side
// effects and is idempotent over an unmodified file.
func (uc *CountWordsUseCase) Execute(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	total, err := uc.counter.CountBodyWords(path)
	if err != nil {
		return 0, err
	}

	log.GlobalDebug("counted body words", "path", path, "total", total)
	return total, nil
}
