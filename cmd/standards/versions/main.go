package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bayat/go-standards/cmd/standards/internal/bootstrap"
	"github.com/bayat/go-standards/internal/commands"
	versionscmd "github.com/bayat/go-standards/internal/commands/versions"
	"github.com/bayat/go-standards/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runUpdateVersions(os.Args[1:]); err != nil {
		log.Fatalf("update-versions: %v", err)
	}
}

func runUpdateVersions(args []string) error {
	fs := flag.NewFlagSet("update-versions", flag.ExitOnError)
	rootDir := fs.String("root", ".", "Path to the corpus root")
	directory := fs.String("directory", ".", "Directory to update, relative to the corpus root")
	manifest := fs.String("manifest", "versions.yaml", "Version manifest, relative to the corpus root")
	stamp := fs.Bool("stamp", false, "Rewrite last_updated on changed documents")
	dryRun := fs.Bool("dry-run", false, "Report changes without writing documents")
	bumpDoc := fs.String("bump", "", "Bump a single document instead of updating markers")
	bumpVersion := fs.String("set-version", "", "Version written by -bump")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RootDir:      *rootDir,
		Recursive:    true,
		ManifestPath: *manifest,
		LogLevel:     *logLevel,
	})
	if err != nil {
		return err
	}

	service := module.Module.Versions()
	if service == nil {
		return fmt.Errorf("version updates not configured; ensure Features.Versions is enabled")
	}

	if *bumpDoc != "" {
		if err := service.BumpDocument(context.Background(), *bumpDoc, *bumpVersion); err != nil {
			return err
		}
		fmt.Printf("bumped %s to %s\n", *bumpDoc, *bumpVersion)
		return nil
	}

	if !module.CommandsEnabled {
		_, err := service.UpdateDirectory(context.Background(), *directory, interfaces.VersionUpdateOptions{
			DryRun: *dryRun,
			Stamp:  *stamp,
		})
		return err
	}

	handler := versionscmd.NewUpdateVersionsHandler(service, module.Logger, versionscmd.FeatureGates{},
		commands.WithTimeout[versionscmd.UpdateVersionsCommand](module.CommandTimeout))

	return handler.Execute(context.Background(), versionscmd.UpdateVersionsCommand{
		Directory: *directory,
		DryRun:    *dryRun,
		Stamp:     *stamp,
	})
}
