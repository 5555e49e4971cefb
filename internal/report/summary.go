package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Olyastel/Site-parsing/internal/model"
)

// SummaryWriter prints run statistics as terminal tables.
type SummaryWriter struct {
	baseWriter

	// perSection adds a row per section below the totals.
	perSection bool
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithSectionBreakdown adds a per-section table.
func WithSectionBreakdown(enabled bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.perSection = enabled
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write prints the totals and, optionally, the per-section breakdown.
func (w *SummaryWriter) Write(run *model.Run) (int, error) {
	stats := run.Stats()

	t := table.NewWriter()
	t.SetTitle("Statistics")
	t.AppendHeader(table.Row{"Sections", "Subsections", "Judges", "With details"})
	t.AppendRow(table.Row{stats.Sections, stats.Subsections, stats.Judges, stats.WithDetails})
	t.SetStyle(table.StyleRounded)
	out := t.Render() + "\n"

	if w.perSection && len(run.Directory) > 0 {
		out += sectionTable(run.Directory) + "\n"
	}
	if run.OutputPath != "" {
		out += fmt.Sprintf("Output: %s\n", run.OutputPath)
	}

	return io.WriteString(w.output, out)
}

func sectionTable(dir model.Directory) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Section", "Code", "Subsections", "Judges"})
	for _, sec := range dir {
		code := "-"
		if sec.Code != nil {
			code = *sec.Code
		}
		judges := 0
		for _, sub := range sec.Subsections {
			judges += len(sub.Judges)
		}
		t.AppendRow(table.Row{sec.Name, code, sec.SubsectionsCount, judges})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}

// WriteHistory prints archived runs, newest first as given.
func WriteHistory(w io.Writer, runs []model.RunInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Started", "Duration", "Sections", "Subsections", "Judges", "Status"})
	for _, r := range runs {
		status := "complete"
		if r.Partial {
			status = "partial"
		}
		duration := "-"
		if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		t.AppendRow(table.Row{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			r.Stats.Sections,
			r.Stats.Subsections,
			r.Stats.Judges,
			status,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
