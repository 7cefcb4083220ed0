// Package artifact renders and writes the generated header artifacts.
//
// An Artifact is a finite, fully computed value: a preamble followed by
// sections of lines. A Writer owns one destination path and replaces it
// atomically, so readers of the path never observe a partial artifact.
package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Section is a group of output lines, optionally introduced by a header line.
type Section struct {
	Header string
	Lines  []string
}

// Artifact is the complete content of one generated file.
type Artifact struct {
	Preamble string
	Sections []Section
	// Separate appends a blank line after every section.
	Separate bool
}

// NewFunctions builds the functions artifact: one section per source file,
// headed by a "// <path>" comment and followed by a blank line.
func NewFunctions(sections []Section) *Artifact {
	return &Artifact{Preamble: FunctionsPreamble, Sections: sections, Separate: true}
}

// NewEnums builds the enums artifact: one bare constant name per line.
func NewEnums(constants []string) *Artifact {
	return &Artifact{Preamble: EnumsPreamble, Sections: []Section{{Lines: constants}}}
}

// FileHeader returns the comment line that introduces a source file's section.
func FileHeader(path string) string {
	return "// " + path
}

// Render writes the artifact to w.
func (a *Artifact) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(a.Preamble); err != nil {
		return err
	}
	for _, s := range a.Sections {
		if s.Header != "" {
			if _, err := fmt.Fprintln(bw, s.Header); err != nil {
				return err
			}
		}
		for _, line := range s.Lines {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
		}
		if a.Separate {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// LineCount returns the number of section lines, excluding preamble and headers.
func (a *Artifact) LineCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Lines)
	}
	return n
}

// Writer writes artifacts to a fixed destination.
type Writer struct {
	path string
}

// NewWriter returns a writer for path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the destination path.
func (w *Writer) Path() string {
	return w.path
}

// Write stages a and commits it at once. Any existing file is replaced
// whole; on error the destination is left untouched.
func (w *Writer) Write(a *Artifact) error {
	staged, err := w.Stage(a)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Staged is a rendered artifact held in a temporary file beside its
// destination until Commit or Discard.
type Staged struct {
	tmp  string
	path string
}

// Stage renders a into a temporary file in the destination directory.
func (w *Writer) Stage(a *Artifact) (_ *Staged, err error) {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for %s: %w", w.path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = a.Render(tmp); err != nil {
		return nil, fmt.Errorf("writing %s: %w", w.path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return nil, fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}
	return &Staged{tmp: tmpName, path: w.path}, nil
}

// Path returns the destination path.
func (s *Staged) Path() string {
	return s.path
}

// Commit renames the temporary file over the destination.
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		os.Remove(s.tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Discard removes the temporary file. The destination is not touched.
func (s *Staged) Discard() {
	os.Remove(s.tmp)
}
