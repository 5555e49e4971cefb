package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Olyastel/Site-parsing/internal/model"
)

// JSONWriter outputs the judge directory as a JSON array.
//
// Non-ASCII text is written literally and HTML characters are not escaped,
// so names and biographies stay readable in the file.
type JSONWriter struct {
	baseWriter

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string. Empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets the line prefix and indentation string.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint indents with two spaces.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run's directory.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	return w.WriteDirectory(run.Directory)
}

// WriteDirectory outputs dir. A nil directory is written as an empty array.
func (w *JSONWriter) WriteDirectory(dir model.Directory) (int, error) {
	if dir == nil {
		dir = model.Directory{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indentPrefix != "" || w.indentString != "" {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	if err := enc.Encode(dir); err != nil {
		return 0, fmt.Errorf("failed to encode directory: %w", err)
	}

	return w.output.Write(buf.Bytes())
}

// WriteJSONFile writes dir to path as an indented JSON document, creating
// missing parent directories. The file is replaced atomically.
func WriteJSONFile(path string, dir model.Directory) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(parent, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) //nolint:errcheck // Fails harmlessly after a successful rename
	}()

	if _, err := NewJSONWriter(tmp, WithPrettyPrint()).WriteDirectory(dir); err != nil {
		_ = tmp.Close() //nolint:errcheck // The write error is reported instead
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // The document is meant to be shared
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ReadJSONFile reads a directory document written by WriteJSONFile.
func ReadJSONFile(path string) (model.Directory, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is user-provided
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}

	var dir model.Directory
	if err := json.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("failed to parse directory file: %w", err)
	}
	return dir, nil
}
