package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bayat/go-standards/cmd/standards/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runValidate(os.Args[1:])
	if err != nil {
		log.Fatalf("validate: %v", err)
	}
	os.Exit(code)
}

func runValidate(args []string) (int, error) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
	directory := fs.String("directory", ".", "Directory to validate, relative to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RootDir:   *rootDir,
		Pattern:   *pattern,
		Recursive: true,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return 0, err
	}

	headers := module.Module.Headers()
	if headers == nil {
		return 0, fmt.Errorf("header policy not configured; ensure Features.Headers is enabled")
	}

	ctx := context.Background()

	issues, err := headers.InspectDirectory(ctx, *directory)
	if err != nil {
		return 0, err
	}
	for _, issue := range issues {
		if issue.Field != "" {
			fmt.Printf("%s: %s (%s)\n", issue.DocumentPath, issue.Reason, issue.Field)
			continue
		}
		fmt.Printf("%s: %s\n", issue.DocumentPath, issue.Reason)
	}

	schemaIssues := 0
	if schema := module.Module.Validation(); schema != nil {
		report, err := schema.ValidateDirectory(ctx)
		if err != nil {
			return 0, err
		}
		schemaIssues = len(report.Issues)
		for _, issue := range report.Issues {
			fmt.Printf("%s: schema %s: %s\n", issue.DocumentPath, issue.Location, issue.Message)
		}
	}

	fmt.Printf("%d header issues, %d schema issues\n", len(issues), schemaIssues)

	if len(issues) > 0 || schemaIssues > 0 {
		return 1, nil
	}
	return 0, nil
}
