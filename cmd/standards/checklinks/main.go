package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bayat/go-standards/cmd/standards/internal/bootstrap"
	"github.com/bayat/go-standards/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runCheckLinks(os.Args[1:])
	if err != nil {
		log.Fatalf("check-links: %v", err)
	}
	os.Exit(code)
}

func runCheckLinks(args []string) (int, error) {
	fs := flag.NewFlagSet("check-links", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
	directory := fs.String("directory", ".", "Directory to check, relative to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	workers := fs.Int("workers", 0, "Concurrent document checks (0 uses GOMAXPROCS)")
	anchors := fs.Bool("anchors", false, "Verify path#anchor fragments against target headings")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RootDir:      *rootDir,
		Pattern:      *pattern,
		Recursive:    true,
		Workers:      *workers,
		CheckAnchors: *anchors,
		LogLevel:     *logLevel,
	})
	if err != nil {
		return 0, err
	}

	links := module.Module.Links()
	if links == nil {
		return 0, fmt.Errorf("link checking not configured; ensure Features.Links is enabled")
	}

	report, err := links.CheckDirectory(context.Background(), *directory, interfaces.CheckOptions{})
	if err != nil {
		return 0, err
	}

	for _, broken := range report.Broken {
		fmt.Printf("%s:%d: broken link %q (%s)\n",
			broken.DocumentPath, broken.Link.Line, broken.Link.Target, broken.Reason)
	}
	fmt.Printf("checked %d links in %d documents, %d skipped, %d broken\n",
		report.LinksChecked, report.DocumentsChecked, report.LinksSkipped, len(report.Broken))

	if report.Failed() {
		return 1, nil
	}
	return 0, nil
}
