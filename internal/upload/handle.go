package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Handle is an opaque reference to user-supplied file content.
//
// Only the processor interprets what Open returns; callers pass handles
// through untouched.
type Handle interface {
	// Name is the original file name; its extension selects the parser.
	Name() string
	// Open returns a fresh reader over the content. Callers must close it.
	Open() (io.ReadCloser, error)
}

// FileHandle references a file on local disk (CLI mode).
type FileHandle struct {
	Path string
}

// NewFileHandle returns a handle for path. The file is not opened yet.
func NewFileHandle(path string) FileHandle {
	return FileHandle{Path: path}
}

func (h FileHandle) Name() string { return filepath.Base(h.Path) }

func (h FileHandle) Open() (io.ReadCloser, error) { return os.Open(h.Path) }

// MultipartHandle references a file received in a multipart form (HTTP mode).
type MultipartHandle struct {
	Header *multipart.FileHeader
}

// NewMultipartHandle wraps fh. A nil fh yields a nil Handle so the
// processor can treat a missing upload the same way as any other failure.
func NewMultipartHandle(fh *multipart.FileHeader) Handle {
	if fh == nil {
		return nil
	}
	return MultipartHandle{Header: fh}
}

func (h MultipartHandle) Name() string { return h.Header.Filename }

func (h MultipartHandle) Open() (io.ReadCloser, error) { return h.Header.Open() }

// MemoryHandle holds content already in memory.
type MemoryHandle struct {
	FileName string
	Data     []byte
}

func (h MemoryHandle) Name() string { return h.FileName }

func (h MemoryHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(h.Data)), nil
}
