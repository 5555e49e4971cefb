package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/Olyastel/Site-parsing/internal/model"
)

// MarkdownWriter outputs the judge directory as a Markdown document with
// one heading per section and one judges table per subsection.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	for _, section := range run.Directory {
		w.writeSection(md, section)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title, run properties and totals.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	stats := run.Stats()

	md.H1("Judge Directory")
	md.PlainText("")

	rows := [][]string{
		{"Source", run.BaseURL},
		{"Sections", strconv.Itoa(stats.Sections)},
		{"Subsections", strconv.Itoa(stats.Subsections)},
		{"Judges", strconv.Itoa(stats.Judges)},
		{"Judges with profile details", strconv.Itoa(stats.WithDetails)},
	}
	if !run.StartedAt.IsZero() {
		rows = append(rows, []string{"Collected", run.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if run.Partial {
		md.Warningf("The crawl did not finish, the directory is incomplete: %s", run.ErrorMessage)
		md.PlainText("")
	}
	if len(run.Directory) == 0 {
		md.Note("No sections were found.")
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSection(md *markdown.Markdown, section model.Section) {
	title := section.Name
	if section.Code != nil && *section.Code != "" {
		title += " (" + *section.Code + ")"
	}
	md.H2(title)
	md.PlainText("")

	for _, sub := range section.Subsections {
		w.writeSubsection(md, sub)
	}
}

func (w *MarkdownWriter) writeSubsection(md *markdown.Markdown, sub model.Subsection) {
	md.H3(sub.Name)
	md.PlainText("")
	md.PlainTextf("Source: %s", sub.URL)
	md.PlainText("")

	if len(sub.Judges) == 0 {
		md.PlainText("No judges listed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(sub.Judges))
	for i, j := range sub.Judges {
		rows[i] = []string{
			escapeCell(j.Name),
			escapeCell(j.Position),
			escapeCell(j.Class),
			escapeCell(j.Appointment),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Position", "Class", "Appointment"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, j := range sub.Judges {
		if !j.HasDetails() {
			continue
		}
		md.Details(j.Name, judgeDetails(j))
	}
	md.PlainText("")
}

// judgeDetails renders the long profile fields for a collapsible block.
func judgeDetails(j model.Judge) string {
	var b strings.Builder
	b.WriteString("Photo: " + j.PhotoURL + "\n\n")
	if len(j.Career) > 0 {
		b.WriteString("Career:\n\n")
		for _, entry := range j.Career {
			b.WriteString("- " + entry + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Education: " + j.Education + "\n\n")
	b.WriteString("Awards: " + j.Awards)
	return b.String()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by courtscan*")
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
