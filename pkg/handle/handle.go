//Package handle implements open file descriptions on top of inodefs nodes.
//
//A Handle owns a cursor and an access mode. Operations that use the
//cursor are serialized by a per handle mutex which is held across the
//node call and the cursor update. Positional operations never take it.
package handle

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/majiru/inodefs"
)

//Handle is an open file description. It is safe for concurrent use.
type Handle struct {
	node inodefs.Node
	opts inodefs.Options

	mu     sync.Mutex
	cursor int64
}

var _ inodefs.File = (*Handle)(nil)

//Open checks opts against the node's owner permission bits and returns
//a handle positioned at the start of the node.
func Open(n inodefs.Node, opts inodefs.Options) (*Handle, error) {
	if err := checkOpen(n, opts); err != nil {
		return nil, err
	}
	return &Handle{node: n, opts: opts}, nil
}

func (h *Handle) Node() inodefs.Node { return h.node }

func (h *Handle) Options() inodefs.Options { return h.opts }

//Position returns the current cursor.
func (h *Handle) Position() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

//Read reads from the cursor and advances it by the bytes read.
//At the end of content it returns 0 and a nil error.
func (h *Handle) Read(p []byte) (int, error) {
	if err := h.canRead("read"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n, err := h.node.ReadAt(p, h.cursor)
	if err != nil {
		return 0, err
	}
	h.cursor += int64(n)
	return n, nil
}

//Write writes at the cursor and advances it by the bytes written.
//In append mode the cursor is first moved to the node's current size.
//That size is only stable against writers on this handle.
func (h *Handle) Write(p []byte) (int, error) {
	if err := h.canWrite("write"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.seekAppend(); err != nil {
		return 0, err
	}
	n, err := h.node.WriteAt(p, h.cursor)
	if err != nil {
		return 0, err
	}
	h.cursor += int64(n)
	return n, nil
}

//seekAppend must be called with h.mu held.
func (h *Handle) seekAppend() error {
	if !h.opts.Append {
		return nil
	}
	fi, err := h.node.Metadata()
	if err != nil {
		return err
	}
	h.cursor = fi.Size()
	return nil
}

func (h *Handle) ReadAt(p []byte, off int64) (int, error) {
	if err := h.canRead("readat"); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, invalid("readat")
	}
	return h.node.ReadAt(p, off)
}

func (h *Handle) WriteAt(p []byte, off int64) (int, error) {
	if err := h.canWrite("writeat"); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, invalid("writeat")
	}
	return h.node.WriteAt(p, off)
}

//Seek moves the cursor and returns its new value. A target before the
//start of the file, or one that overflows, fails with ErrInvalidArgument
//and leaves the cursor where it was.
func (h *Handle) Seek(pos inodefs.SeekFrom) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var base int64
	switch pos.Whence {
	case inodefs.SeekStart:
	case inodefs.SeekCurrent:
		base = h.cursor
	case inodefs.SeekEnd:
		fi, err := h.node.Metadata()
		if err != nil {
			return 0, err
		}
		base = fi.Size()
	default:
		return 0, invalid("seek")
	}
	if pos.Offset > 0 && base > math.MaxInt64-pos.Offset {
		return 0, invalid("seek")
	}
	abs := base + pos.Offset
	if abs < 0 {
		return 0, invalid("seek")
	}
	h.cursor = abs
	return abs, nil
}

func (h *Handle) Metadata() (os.FileInfo, error) {
	return h.node.Metadata()
}

//SetLength resizes the node. The cursor is left alone, so it may end
//up past the end of content.
func (h *Handle) SetLength(size int64) error {
	if err := h.canWrite("setlength"); err != nil {
		return err
	}
	if size < 0 {
		return invalid("setlength")
	}
	return h.node.Resize(size)
}

func (h *Handle) SyncAll() error  { return h.node.SyncAll() }
func (h *Handle) SyncData() error { return h.node.SyncData() }

//ReadEntry returns the name of the directory entry at the cursor and
//moves the cursor to the next entry. The cursor counts entries, not
//bytes, so a handle must not mix ReadEntry with Read or Write.
func (h *Handle) ReadEntry() (string, error) {
	if err := h.canRead("readentry"); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	name, err := h.node.EntryNameAt(h.cursor)
	if err != nil {
		return "", err
	}
	h.cursor++
	return name, nil
}

//Close releases the handle. The node is shared and stays alive.
func (h *Handle) Close() error { return nil }

func (h *Handle) String() string {
	return fmt.Sprintf("Handle{node: %T, pos: %d, options: %+v}", h.node, h.Position(), h.opts)
}

//ReadAll reads the whole content of a node, bypassing any handle.
func ReadAll(n inodefs.Node) ([]byte, error) {
	fi, err := n.Metadata()
	if err != nil {
		return nil, err
	}
	b := make([]byte, fi.Size())
	m, err := n.ReadAt(b, 0)
	if err != nil {
		return nil, err
	}
	return b[:m], nil
}
