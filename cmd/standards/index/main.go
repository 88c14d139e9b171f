package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bayat/go-standards/cmd/standards/internal/bootstrap"
	"github.com/bayat/go-standards/internal/commands"
	indexcmd "github.com/bayat/go-standards/internal/commands/index"
	"github.com/bayat/go-standards/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runIndex(os.Args[1:]); err != nil {
		log.Fatalf("index: %v", err)
	}
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
	file := fs.String("file", "README.md", "Index document, relative to the corpus root")
	verify := fs.Bool("verify", false, "Verify index coverage instead of rebuilding")
	dryRun := fs.Bool("dry-run", false, "Report changes without writing the index")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RootDir:   *rootDir,
		Recursive: true,
		IndexFile: *file,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return err
	}

	service := module.Module.Index()
	if service == nil {
		return fmt.Errorf("index maintenance not configured; ensure Features.Index is enabled")
	}

	ctx := context.Background()

	if !module.CommandsEnabled {
		if *verify {
			result, err := service.Verify(ctx)
			if err != nil {
				return err
			}
			if result.Failed() {
				return fmt.Errorf("index: %d documents missing from index", len(result.Missing))
			}
			return nil
		}
		_, err := service.Build(ctx, interfaces.IndexBuildOptions{DryRun: *dryRun})
		return err
	}

	gates := indexcmd.FeatureGates{}

	if *verify {
		handler := indexcmd.NewVerifyIndexHandler(service, module.Logger, gates,
			commands.WithTimeout[indexcmd.VerifyIndexCommand](module.CommandTimeout))
		return handler.Execute(ctx, indexcmd.VerifyIndexCommand{})
	}

	handler := indexcmd.NewBuildIndexHandler(service, module.Logger, gates,
		commands.WithTimeout[indexcmd.BuildIndexCommand](module.CommandTimeout))
	return handler.Execute(ctx, indexcmd.BuildIndexCommand{DryRun: *dryRun})
}
