// Package site orchestrates full documentation builds: load the content
// tree, generate every configured sidebar slice, render pages, copy assets,
// write sidebars.json, and record the build in the document index. A
// cross-process file lock serializes builds against the same site root.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/harrison/docsmith/internal/config"
	"github.com/harrison/docsmith/internal/content"
	"github.com/harrison/docsmith/internal/filelock"
	"github.com/harrison/docsmith/internal/index"
	"github.com/harrison/docsmith/internal/logger"
	"github.com/harrison/docsmith/internal/sidebar"
)

// Logger receives progress output during a build. *logger.ConsoleLogger and
// *logger.FileLogger both satisfy the interface.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

// Result summarizes a completed build.
type Result struct {
	BuildID   string
	Documents int // documents loaded, drafts included
	Drafts    int // drafts excluded from the build
	Pages     int // HTML pages written
	Sidebars  int // sidebar slices generated
	Assets    int // asset files copied
	OutputDir string
	Duration  time.Duration
}

// Builder runs full site builds against one site root. Relative config
// paths resolve against the root.
type Builder struct {
	cfg      *config.Config
	root     string
	log      Logger
	progress io.Writer
	markdown goldmark.Markdown
}

// NewBuilder creates a Builder for the site at root. progress receives the
// page-by-page rendering display and may be nil to suppress it; log may be
// nil to suppress logging.
func NewBuilder(root string, cfg *config.Config, log Logger, progress io.Writer) *Builder {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Builder{
		cfg:      cfg,
		root:     root,
		log:      log,
		progress: progress,
		markdown: goldmark.New(),
	}
}

// Build runs one full build. Sidebar slices are generated before anything
// is written, so a structural error leaves the output directory untouched.
// Any later error aborts the build; sidebars.json is written atomically and
// never left partial.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	buildID := uuid.New().String()

	stateDir, err := config.StateDir(b.root)
	if err != nil {
		return nil, err
	}

	lock := filelock.NewFileLock(filepath.Join(stateDir, "build.lock"))
	lock.SetMonitor(func(path string, metrics filelock.LockMetrics) {
		b.log.LogDebug(fmt.Sprintf("build lock %s: %d attempts over %s", path, metrics.Attempts, metrics.Wait))
	})
	if err := lock.LockWithTimeout(b.cfg.LockTimeout); err != nil {
		return nil, fmt.Errorf("another build appears to be running: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	b.log.LogInfo(fmt.Sprintf("starting build %s", shortID(buildID)))

	contentDir := config.ResolvePath(b.root, b.cfg.ContentDir)
	outputDir := config.ResolvePath(b.root, b.cfg.OutputDir)

	loader := content.NewLoader(contentDir, b.log)
	docs, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	published := make([]content.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Draft {
			b.log.LogDebug(fmt.Sprintf("skipping draft %s", doc.Path))
			continue
		}
		published = append(published, doc)
	}
	drafts := len(docs) - len(published)
	b.log.LogInfo(fmt.Sprintf("loaded %d documents (%d drafts skipped)", len(docs), drafts))

	trees, err := b.generateSidebars(published, contentDir)
	if err != nil {
		return nil, err
	}

	if err := b.renderPages(published, outputDir); err != nil {
		return nil, err
	}

	assets, err := b.copyAssets(contentDir, outputDir)
	if err != nil {
		return nil, err
	}

	if err := writeSidebarsFile(outputDir, trees); err != nil {
		return nil, err
	}

	if b.cfg.Index.Enabled {
		if err := b.recordBuild(ctx, buildID, published); err != nil {
			return nil, err
		}
	}

	return &Result{
		BuildID:   buildID,
		Documents: len(docs),
		Drafts:    drafts,
		Pages:     len(published),
		Sidebars:  len(trees),
		Assets:    assets,
		OutputDir: outputDir,
		Duration:  time.Since(start),
	}, nil
}

// SidebarInputs converts loaded documents into sidebar generator inputs.
// Draft filtering is the caller's job.
func SidebarInputs(docs []content.Document) []sidebar.Document {
	inputs := make([]sidebar.Document, len(docs))
	for i, doc := range docs {
		inputs[i] = sidebar.Document{
			ID:       doc.ID,
			Path:     doc.Path,
			Dir:      doc.Dir,
			Label:    doc.SidebarLabel,
			Position: doc.SidebarPosition,
		}
	}
	return inputs
}

// generateSidebars builds every configured sidebar slice from the published
// documents.
func (b *Builder) generateSidebars(docs []content.Document, contentDir string) (map[string][]sidebar.Node, error) {
	inputs := SidebarInputs(docs)
	gen := sidebar.NewGenerator(contentDir, b.cfg.DefaultCollapsed, b.log)

	trees := make(map[string][]sidebar.Node, len(b.cfg.Sidebars))
	for _, slice := range b.cfg.Sidebars {
		nodes, err := gen.Generate(inputs, slice.TargetDir)
		if err != nil {
			return nil, fmt.Errorf("failed to generate sidebar %q: %w", slice.Name, err)
		}
		b.log.LogDebug(fmt.Sprintf("sidebar %q: %d top-level entries", slice.Name, len(nodes)))
		trees[slice.Name] = nodes
	}
	return trees, nil
}

// writeSidebarsFile writes the slice-name-to-tree map as sidebars.json under
// outputDir. Concurrent writers are serialized through a lock file.
func writeSidebarsFile(outputDir string, trees map[string][]sidebar.Node) error {
	data, err := json.MarshalIndent(trees, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sidebars: %w", err)
	}
	data = append(data, '\n')

	// An empty site renders no pages, so nothing has created outputDir yet
	// and the lock file needs it to exist.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := filelock.LockAndWrite(filepath.Join(outputDir, "sidebars.json"), data); err != nil {
		return fmt.Errorf("failed to write sidebars.json: %w", err)
	}
	return nil
}

// recordBuild replaces the document index contents with this build's
// documents and prunes old build history.
func (b *Builder) recordBuild(ctx context.Context, buildID string, docs []content.Document) error {
	dbPath := config.ResolvePath(b.root, b.cfg.Index.DBPath)
	store, err := index.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rows := make([]index.Document, len(docs))
	for i, doc := range docs {
		rows[i] = index.Document{
			ID:          doc.ID,
			SourcePath:  doc.Path,
			Slug:        doc.Slug,
			Title:       doc.Title,
			Description: doc.Description,
			Position:    doc.SidebarPosition,
		}
	}

	if err := store.ReplaceDocuments(ctx, buildID, b.cfg.ContentDir, rows); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}

	pruned, err := store.PruneBuilds(ctx, b.cfg.Index.KeepBuilds)
	if err != nil {
		return fmt.Errorf("failed to prune build history: %w", err)
	}
	if pruned > 0 {
		b.log.LogDebug(fmt.Sprintf("pruned %d old builds from index", pruned))
	}
	return nil
}

// shortID returns the first eight characters of a build ID for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
