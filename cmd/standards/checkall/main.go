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
	code, err := runCheckAll(os.Args[1:])
	if err != nil {
		log.Fatalf("check-all: %v", err)
	}
	os.Exit(code)
}

// runCheckAll chains validation, link checking, and index verification. Every
// phase runs even after a failure so a single pass reports everything.
func runCheckAll(args []string) (int, error) {
	fs := flag.NewFlagSet("check-all", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
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

	ctx := context.Background()
	code := 0

	if headers := module.Module.Headers(); headers != nil {
		issues, err := headers.InspectDirectory(ctx, ".")
		if err != nil {
			return 0, err
		}
		for _, issue := range issues {
			fmt.Printf("%s: %s\n", issue.DocumentPath, issue.Reason)
		}
		if len(issues) > 0 {
			code = 1
		}
		fmt.Printf("validate: %d issues\n", len(issues))
	}

	if schema := module.Module.Validation(); schema != nil {
		report, err := schema.ValidateDirectory(ctx)
		if err != nil {
			return 0, err
		}
		for _, issue := range report.Issues {
			fmt.Printf("%s: schema %s: %s\n", issue.DocumentPath, issue.Location, issue.Message)
		}
		if len(report.Issues) > 0 {
			code = 1
		}
	}

	if links := module.Module.Links(); links != nil {
		report, err := links.CheckDirectory(ctx, ".", interfaces.CheckOptions{})
		if err != nil {
			return 0, err
		}
		for _, broken := range report.Broken {
			fmt.Printf("%s:%d: broken link %q (%s)\n",
				broken.DocumentPath, broken.Link.Line, broken.Link.Target, broken.Reason)
		}
		if report.Failed() {
			code = 1
		}
		fmt.Printf("check-links: %d broken of %d checked\n", len(report.Broken), report.LinksChecked)
	}

	if index := module.Module.Index(); index != nil {
		result, err := index.Verify(ctx)
		if err != nil {
			return 0, err
		}
		for _, missing := range result.Missing {
			fmt.Printf("%s: missing from index\n", missing)
		}
		if result.Failed() {
			code = 1
		}
		fmt.Printf("index: %d entries, %d missing\n", result.Entries, len(result.Missing))
	}

	return code, nil
}
