package links

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// Config tunes the link checker.
type Config struct {
	// Workers bounds concurrent document checks; zero means GOMAXPROCS.
	Workers int
	// CheckAnchors verifies `path#anchor` fragments against target headings.
	CheckAnchors bool
	// IgnorePatterns lists glob expressions for documents the checker skips.
	IgnorePatterns []string
	// Pattern limits discovery to matching files (defaults to "*.md").
	Pattern   string
	Recursive bool
}

// Checker validates every markdown link in a corpus: targets must resolve to
// an existing file relative to the document's directory or the corpus root,
// while external (http, https, mailto) targets are skipped.
type Checker struct {
	fsys   fs.FS
	loader *markdown.Loader
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.LinkCheckService = (*Checker)(nil)

// NewChecker constructs a checker over the corpus filesystem.
func NewChecker(fsys fs.FS, cfg Config, logger interfaces.Logger) *Checker {
	if logger == nil {
		logger = logging.NoOp()
	}
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})
	return &Checker{
		fsys:   fsys,
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckDirectory walks dir and checks every document beneath it. The report
// orders broken links by document path, then line, independent of worker
// scheduling.
func (c *Checker) CheckDirectory(ctx context.Context, dir string, opts interfaces.CheckOptions) (*interfaces.LinkReport, error) {
	results, err := c.loader.LoadDirectory(ctx, normaliseDir(dir), markdown.LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, fmt.Errorf("link check load %s: %w", dir, err)
	}

	checkAnchors := c.cfg.CheckAnchors
	if opts.CheckAnchors != nil {
		checkAnchors = *opts.CheckAnchors
	}

	docs := make([]*markdown.DocumentResult, 0, len(results))
	for _, result := range results {
		if c.ignored(result.Document.Path) {
			continue
		}
		docs = append(docs, result)
	}

	anchors := newAnchorCache(c.fsys)
	outcomes := make([]docOutcome, len(docs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers(opts.Workers))

	for i, doc := range docs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = c.checkDocument(doc, checkAnchors, anchors)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := &interfaces.LinkReport{DocumentsChecked: len(docs)}
	for _, outcome := range outcomes {
		report.LinksChecked += outcome.checked
		report.LinksSkipped += outcome.skipped
		report.Broken = append(report.Broken, outcome.broken...)
	}
	sort.Slice(report.Broken, func(i, j int) bool {
		if report.Broken[i].DocumentPath != report.Broken[j].DocumentPath {
			return report.Broken[i].DocumentPath < report.Broken[j].DocumentPath
		}
		return report.Broken[i].Link.Line < report.Broken[j].Link.Line
	})

	c.logger.Info("links.check.completed",
		"documents", report.DocumentsChecked,
		"links", report.LinksChecked,
		"skipped", report.LinksSkipped,
		"broken", len(report.Broken),
	)
	return report, nil
}

type docOutcome struct {
	checked int
	skipped int
	broken  []interfaces.BrokenLink
}

func (c *Checker) checkDocument(result *markdown.DocumentResult, checkAnchors bool, anchors *anchorCache) docOutcome {
	docPath := result.Document.Path
	body := result.Document.Body
	// Line numbers are reported against the file, so offset by the
	// frontmatter block the loader stripped from the body.
	offset := lineCount(result.Source) - lineCount(body)

	outcome := docOutcome{}
	for _, link := range Extract(body) {
		link.Line += offset
		link = Classify(link)

		switch link.Kind {
		case interfaces.LinkExternal:
			outcome.skipped++
			continue
		case interfaces.LinkAnchor:
			if !checkAnchors || link.Fragment == "" {
				outcome.skipped++
				continue
			}
			outcome.checked++
			if !anchors.contains(docPath, link.Fragment) {
				outcome.broken = append(outcome.broken, interfaces.BrokenLink{
					DocumentPath: docPath,
					Link:         link,
					Reason:       fmt.Sprintf("anchor %q not found", link.Fragment),
				})
			}
			continue
		}

		outcome.checked++
		resolved, ok := c.resolve(link, docPath)
		if !ok {
			outcome.broken = append(outcome.broken, interfaces.BrokenLink{
				DocumentPath: docPath,
				Link:         link,
				Reason:       "target not found",
			})
			continue
		}

		if checkAnchors && link.Fragment != "" && strings.HasSuffix(resolved, ".md") {
			if !anchors.contains(resolved, link.Fragment) {
				outcome.broken = append(outcome.broken, interfaces.BrokenLink{
					DocumentPath: docPath,
					Link:         link,
					Reason:       fmt.Sprintf("anchor %q not found in %s", link.Fragment, resolved),
				})
			}
		}
	}
	return outcome
}

// resolve returns the first existing candidate for the link target.
func (c *Checker) resolve(link interfaces.Link, docPath string) (string, bool) {
	for _, candidate := range resolveCandidates(link, docPath) {
		if escapesRoot(candidate) {
			continue
		}
		if _, err := fs.Stat(c.fsys, candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func (c *Checker) ignored(docPath string) bool {
	for _, pattern := range c.cfg.IgnorePatterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		target := docPath
		if !strings.Contains(pattern, "/") {
			target = path.Base(docPath)
		}
		if match, err := path.Match(pattern, target); err == nil && match {
			return true
		}
	}
	return false
}

func (c *Checker) workers(override int) int {
	workers := c.cfg.Workers
	if override > 0 {
		workers = override
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return workers
}

func normaliseDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(dir))
}

func lineCount(data []byte) int {
	count := 0
	for _, b := range data {
		if b == '\n' {
			count++
		}
	}
	return count
}

// anchorCache lazily computes heading anchor sets per target document so
// concurrent workers share the work.
type anchorCache struct {
	fsys fs.FS
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func newAnchorCache(fsys fs.FS) *anchorCache {
	return &anchorCache{
		fsys: fsys,
		sets: map[string]map[string]struct{}{},
	}
}

func (a *anchorCache) contains(docPath, fragment string) bool {
	set := a.get(docPath)
	if set == nil {
		return false
	}
	_, ok := set[strings.ToLower(fragment)]
	return ok
}

func (a *anchorCache) get(docPath string) map[string]struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	if set, ok := a.sets[docPath]; ok {
		return set
	}

	var set map[string]struct{}
	if data, err := fs.ReadFile(a.fsys, docPath); err == nil {
		if _, body, err := markdown.ParseFrontMatter(data); err == nil {
			set = AnchorSet(body)
		}
	}
	a.sets[docPath] = set
	return set
}
