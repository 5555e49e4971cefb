package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Olyastel/Site-parsing/internal/model"
	"github.com/Olyastel/Site-parsing/internal/report"
)

// Crawler collects the judge directory. *crawler.Crawler implements it.
type Crawler interface {
	Run(ctx context.Context) (model.Directory, error)
}

// RunSaver archives a finished run. *database.Archive implements it.
type RunSaver interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// CrawlStep runs the crawler and stores the directory on the run.
// A run-level crawl failure is returned after the partial directory has
// been stored, so later steps can decide what to do with it.
type CrawlStep struct {
	crawler Crawler

	// now is replaceable in tests.
	now func() time.Time
}

// NewCrawlStep creates a crawl step.
func NewCrawlStep(c Crawler) *CrawlStep {
	return &CrawlStep{crawler: c, now: time.Now}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl.
func (s *CrawlStep) Do(ctx context.Context, run *model.Run) error {
	run.StartedAt = s.now()
	dir, err := s.crawler.Run(ctx)
	run.FinishedAt = s.now()

	if dir != nil {
		run.Directory = dir
	}
	return err
}

// WriteJSONStep writes the directory document. An empty directory is not
// written.
type WriteJSONStep struct {
	path   string
	logger *slog.Logger
}

// NewWriteJSONStep creates a step writing the document to path.
func NewWriteJSONStep(path string, logger *slog.Logger) *WriteJSONStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteJSONStep{path: path, logger: logger}
}

// Name returns the step name.
func (s *WriteJSONStep) Name() string {
	return "write_json"
}

// Do writes the document.
func (s *WriteJSONStep) Do(_ context.Context, run *model.Run) error {
	if len(run.Directory) == 0 {
		s.logger.Warn("no sections collected, nothing written", "path", s.path)
		return nil
	}

	if err := report.WriteJSONFile(s.path, run.Directory); err != nil {
		return err
	}
	run.OutputPath = s.path

	if run.Partial {
		s.logger.Warn("partial directory written", "path", s.path, "error", run.ErrorMessage)
	}
	return nil
}

// WriteMarkdownStep writes the Markdown rendition of the directory.
type WriteMarkdownStep struct {
	path string
}

// NewWriteMarkdownStep creates a step writing Markdown to path.
func NewWriteMarkdownStep(path string) *WriteMarkdownStep {
	return &WriteMarkdownStep{path: path}
}

// Name returns the step name.
func (s *WriteMarkdownStep) Name() string {
	return "write_markdown"
}

// Do writes the Markdown file, creating missing parent directories.
func (s *WriteMarkdownStep) Do(_ context.Context, run *model.Run) error {
	if len(run.Directory) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create markdown directory: %w", err)
	}

	f, err := os.Create(s.path) //nolint:gosec // Path comes from the user's configuration
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}

	if _, err := report.NewMarkdownWriter(f).Write(run); err != nil {
		_ = f.Close() //nolint:errcheck // The write error is reported instead
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// ArchiveStep stores the run in the archive.
type ArchiveStep struct {
	saver  RunSaver
	logger *slog.Logger
}

// NewArchiveStep creates an archive step.
func NewArchiveStep(saver RunSaver, logger *slog.Logger) *ArchiveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveStep{saver: saver, logger: logger}
}

// Name returns the step name.
func (s *ArchiveStep) Name() string {
	return "archive"
}

// Do saves the run. It also runs after cancellation, when partial results
// are being persisted, so the write is detached from ctx.
func (s *ArchiveStep) Do(ctx context.Context, run *model.Run) error {
	id, err := s.saver.SaveRun(context.WithoutCancel(ctx), run)
	if err != nil {
		return err
	}
	s.logger.Info("run archived", "id", id, "partial", run.Partial)
	return nil
}

// SummaryStep prints the run statistics.
type SummaryStep struct {
	out        io.Writer
	perSection bool
}

// NewSummaryStep creates a step printing statistics to out.
func NewSummaryStep(out io.Writer, perSection bool) *SummaryStep {
	return &SummaryStep{out: out, perSection: perSection}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do prints the summary when anything was collected.
func (s *SummaryStep) Do(_ context.Context, run *model.Run) error {
	if len(run.Directory) == 0 {
		return nil
	}
	_, err := report.NewSummaryWriter(s.out, report.WithSectionBreakdown(s.perSection)).Write(run)
	return err
}
