package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"bookly/internal/book"
	"bookly/internal/config"
	"bookly/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the sample books without inserting them")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg)

	if *dryRun {
		for _, in := range sampleBooks() {
			logger.Info("sample book", "title", *in.Title, "author", *in.Author)
		}
		return
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Error("cannot open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	n, err := seed(ctx, book.NewService(st.Books), sampleBooks())
	if err != nil {
		logger.Error("seeding failed", "inserted", n, "error", err)
		os.Exit(1)
	}
	logger.Info("seeding complete", "inserted", n)
}

// seed creates every input through the service and reports how many succeeded.
func seed(ctx context.Context, svc *book.Service, inputs []book.CreateInput) (int, error) {
	for i, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(inputs), nil
}
