package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tweet-collection/internal/adapters/xmldoc"
	"tweet-collection/internal/config"
	"tweet-collection/internal/usecases"
	"tweet-collection/pkg/log"
)

func main() {
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
	// Logs go to stderr; stdout carries only the count.
	log.SetDefault(log.New(level, log.NewJSONSink(os.Stderr)))

	// Positional override: wordcount [collection.xml]
	path := cfg.Collection.Output
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	count := usecases.NewCountWordsUseCase(xmldoc.NewWordCounter())

	total, err := count.Execute(context.Background(), path)
	if err != nil {
		log.GlobalError("count words failed", "path", path, "error", err.Error())
		os.Exit(1)
	}

	fmt.Println(total)
}
