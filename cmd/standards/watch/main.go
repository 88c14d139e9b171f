package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bayat/go-standards/cmd/standards/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runWatch(os.Args[1:]); err != nil {
		log.Fatalf("watch: %v", err)
	}
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	anchors := fs.Bool("anchors", false, "Verify path#anchor fragments against target headings")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RootDir:      *rootDir,
		Pattern:      *pattern,
		Recursive:    true,
		CheckAnchors: *anchors,
		Watch:        true,
		LogLevel:     *logLevel,
	})
	if err != nil {
		return err
	}

	watcher, err := module.Module.NewWatcher()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	watcher.Stop()
	return nil
}
