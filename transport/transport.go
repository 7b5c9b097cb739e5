// Package transport provides the byte transport abstraction (component A):
// an opaque, blocking, byte-oriented duplex channel to one tower device.
package transport

import (
	"io"
	"os"
	"time"

	"github.com/bricks-rs/rcx/rcxerr"
)

// Transport is a blocking, byte-oriented duplex channel. Write pushes bytes
// to the device and flushes; Read returns up to len(buf) bytes read, or a
// KindTimeout *rcxerr.Error once deadline has elapsed without data. The
// transport does not preserve message boundaries on read; callers buffer.
type Transport interface {
	Write(bytes []byte) error
	Read(buf []byte, deadline time.Time) (int, error)
	Close() error
}

// CharDevice is a Transport backed by a character-special device file, the
// shape of a tower's host-side presentation.
type CharDevice struct {
	f *os.File
}

// Open opens path as a character device. It returns a *rcxerr.Error of kind
// KindNotCharDevice if path does not refer to one.
func Open(path string) (*CharDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, rcxerr.Wrap(rcxerr.KindIO, err, "open "+path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, rcxerr.Wrap(rcxerr.KindIO, err, "stat "+path)
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		f.Close()
		return nil, rcxerr.New(rcxerr.KindNotCharDevice, path)
	}
	return &CharDevice{f: f}, nil
}

// Write writes bytes to the device.
func (c *CharDevice) Write(bytes []byte) error {
	if _, err := c.f.Write(bytes); err != nil {
		return rcxerr.Wrap(rcxerr.KindIO, err, "write")
	}
	return nil
}

// Read reads up to len(buf) bytes, honoring deadline. A deadline in the
// past, or one exceeded while blocked in the underlying read, is reported
// as a KindTimeout error rather than a short or empty read.
func (c *CharDevice) Read(buf []byte, deadline time.Time) (int, error) {
	if err := c.f.SetReadDeadline(deadline); err != nil {
		// Not every char device supports deadlines (plain files, some
		// ttys); treat as best-effort and fall through to the read.
	}
	n, err := c.f.Read(buf)
	if err != nil {
		if os.IsTimeout(err) {
			return n, rcxerr.New(rcxerr.KindTimeout, "")
		}
		if err == io.EOF {
			return n, nil
		}
		return n, rcxerr.Wrap(rcxerr.KindIO, err, "read")
	}
	return n, nil
}

// Close releases the underlying device file.
func (c *CharDevice) Close() error {
	return c.f.Close()
}
