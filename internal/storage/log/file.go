// Package log implements the append-only record log.
package log

import (
	"fmt"
	"os"
	"sync/atomic"

	natomic "github.com/natefinch/atomic"
)

// DefaultFilePerm is the permission mode for log files.
const DefaultFilePerm = 0600

// File wraps the single regular file holding the log. Appends are serialized
// by the owning engine; positional reads may run concurrently with appends
// and with each other, and bytes below the last returned append offset are
// stable.
type File struct {
	path string
	f    *os.File
	size atomic.Int64
}

// Open opens the log file at path, creating it if absent, and positions the
// write cursor at the end.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, DefaultFilePerm)
	if err != nil {
		return nil, fmt.Errorf("log: open %s: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("log: stat %s: %w", path, err)
	}

	lf := &File{path: path, f: f}
	lf.size.Store(stat.Size())
	return lf, nil
}

// Append writes p at the end of the file and returns the offset of its first
// byte. On a short or failed write the file may carry a torn tail; the next
// Open truncates it during replay.
func (f *File) Append(p []byte) (int64, error) {
	off := f.size.Load()
	n, err := f.f.WriteAt(p, off)
	f.size.Add(int64(n))
	if err != nil {
		return 0, fmt.Errorf("log: append: %w", err)
	}
	return off, nil
}

// ReadAt implements io.ReaderAt over the log file.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.f.ReadAt(p, off)
}

// Sync durably flushes outstanding writes.
func (f *File) Sync() error {
	if err := f.f.Sync(); err != nil {
		return fmt.Errorf("log: sync: %w", err)
	}
	return nil
}

// Truncate cuts the file down to n bytes. Used to drop a torn tail on open.
func (f *File) Truncate(n int64) error {
	if err := f.f.Truncate(n); err != nil {
		return fmt.Errorf("log: truncate to %d: %w", n, err)
	}
	f.size.Store(n)
	return nil
}

// Replace atomically substitutes the file at tempPath for the live log and
// reopens the handle. All offsets handed out before Replace are invalid
// afterwards. The old handle is closed before the rename so the swap also
// works on platforms without rename-over-open-file.
func (f *File) Replace(tempPath string) error {
	if err := f.f.Close(); err != nil {
		return fmt.Errorf("log: close before replace: %w", err)
	}

	if err := natomic.ReplaceFile(tempPath, f.path); err != nil {
		// Rename failed; the previous log is untouched, so reattach to it.
		if reopenErr := f.reopen(); reopenErr != nil {
			return fmt.Errorf("log: replace: %w (reopen also failed: %v)", err, reopenErr)
		}
		return fmt.Errorf("log: replace: %w", err)
	}

	return f.reopen()
}

func (f *File) reopen() error {
	nf, err := os.OpenFile(f.path, os.O_RDWR, DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("log: reopen %s: %w", f.path, err)
	}
	stat, err := nf.Stat()
	if err != nil {
		nf.Close()
		return fmt.Errorf("log: stat %s: %w", f.path, err)
	}
	f.f = nf
	f.size.Store(stat.Size())
	return nil
}

// Size returns the current total byte length.
func (f *File) Size() int64 {
	return f.size.Load()
}

// Path returns the file's path.
func (f *File) Path() string {
	return f.path
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
