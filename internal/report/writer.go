package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Kind names a report flavor and ends up in the report file name.
type Kind string

const (
	KindBusierThanUsual Kind = "BusierThanUsual"
	KindPopularTimes    Kind = "PopularTimes"
)

// timestampLayout is DD.MM.YYYY_HH.MM.
const timestampLayout = "02.01.2006_15.04"

// FileName returns the report file name for kind written at the given time.
func FileName(kind Kind, at time.Time) string {
	return fmt.Sprintf("%s_%s.txt", at.Format(timestampLayout), kind)
}

// Writer stores reports as JSON text files.
type Writer struct {
	fs  afero.Fs         // Filesystem the reports are written to
	dir string           // Output directory
	now func() time.Time // Clock used for the file name
	out io.Writer        // Console the confirmation is printed to
}

// NewWriter creates a report writer. An empty dir means the working directory.
func NewWriter(fs afero.Fs, dir string, now func() time.Time) *Writer {
	if dir == "" {
		dir = "."
	}
	if now == nil {
		now = time.Now
	}

	return &Writer{fs: fs, dir: dir, now: now, out: os.Stdout}
}

// SetOutput replaces the console the confirmation message is printed to.
func (w *Writer) SetOutput(out io.Writer) {
	w.out = out
}

// Write encodes entries and stores them under a timestamped name, overwriting
// a report of the same kind written in the same minute. It returns the file path.
func (w *Writer) Write(kind Kind, entries any) (string, error) {
	data, err := Encode(entries)
	if err != nil {
		return "", err
	}

	if err = w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := FileName(kind, w.now())
	path := filepath.Join(w.dir, name)
	if err = afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(w.out, "Report saved as %s\n", name)

	return path, nil
}
