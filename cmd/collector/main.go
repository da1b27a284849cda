package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"tweet-collection/internal/adapters/feed"
	"tweet-collection/internal/adapters/xmldoc"
	"tweet-collection/internal/config"
	"tweet-collection/internal/usecases"
	"tweet-collection/pkg/log"
)

func main() {
	// .env is optional; variables already in the environment still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.Info
	}
	logger := log.New(level, log.NewJSONSink(os.Stderr)).With("run_id", uuid.NewString())
	log.SetDefault(logger)

	// Positional overrides: collector [input.json [output.xml]]
	input := cfg.Feed.Input
	output := cfg.Collection.Output
	if len(os.Args) > 1 {
		input = os.Args[1]
	}
	if len(os.Args) > 2 {
		output = os.Args[2]
	}

	reader, err := feed.Open(input)
	if err != nil {
		log.GlobalError("open feed failed", "path", input, "error", err.Error())
		os.Exit(1)
	}
	defer reader.Close()

	build := usecases.NewBuildCollectionUseCase(xmldoc.NewWriter(), cfg.Collection.MaxQuoteDepth)

	count, err := build.Execute(context.Background(), reader, output)
	if err != nil {
		log.GlobalError("build collection failed",
			"input", input, "line", reader.Line(), "error", err.Error())
		os.Exit(1)
	}

	log.GlobalInfo("collection written", "input", input, "output", output, "tweets", count)
}
