package value

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mna/luci/lang/gc"
)

// File wraps an open *os.File as a heap cell so that component C1's
// collector can close the underlying descriptor deterministically when the
// value becomes unreachable, rather than leaving it to whenever Go's own GC
// happens to finalize the wrapper.
type File struct {
	gc.Header
	f      *os.File
	r      *bufio.Reader
	closed bool
}

// OpenFile opens name with the given flag/perm and wraps it.
func OpenFile(name string, flag int, perm os.FileMode) (*File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{f: f, r: bufio.NewReader(f)}, nil
}

// WrapFile wraps an already-open *os.File (used for stdin/stdout/stderr).
func WrapFile(f *os.File) *File {
	return &File{f: f, r: bufio.NewReader(f)}
}

func (v *File) Read(p []byte) (int, error)  { return v.r.Read(p) }
func (v *File) Write(p []byte) (int, error) { return v.f.Write(p) }

// ReadLine reads a single line, excluding the trailing newline, returning
// io.EOF once exhausted.
func (v *File) ReadLine() (string, error) {
	line, err := v.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if line == "" && err == io.EOF {
		return "", io.EOF
	}
	return line, nil
}

// Close closes the underlying file handle, idempotently.
func (v *File) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.f.Close()
}

var fileType = &Type{
	Name:     "file",
	Copy:     func(v Value) Value { return v }, // files are reference-shared, not copied
	Deepcopy: func(v Value) Value { return v },
	Repr:     func(v Value) string { return fmt.Sprintf("<file %s>", v.(*File).f.Name()) },
	AsBool:   func(v Value) bool { return !v.(*File).closed },
	Print:    func(w io.Writer, v Value) { fmt.Fprint(w, Repr(v)) },
}

func (v *File) Descriptor() *Type { return fileType }

// Finalize satisfies gc.Cell: it releases the underlying descriptor when the
// file becomes unreachable, rather than leaving it to whenever Go's own GC
// happens to finalize the wrapper.
func (f *File) Finalize() { f.Close() }

// Mark satisfies gc.Cell; a File has no heap-allocated children to trace.
func (f *File) Mark(h *gc.Heap) {}
