//Package fsutil implements in memory nodes.
package fsutil

import (
	"os"
	"sync"
	"time"

	"github.com/majiru/inodefs"
)

//MaxSize is the largest content a File will hold. Writes or resizes
//past it fail with inodefs.ErrInvalidArgument.
const MaxSize = 1 << 32

//File is an in memory content node.
type File struct {
	sync.RWMutex
	s    []byte
	perm os.FileMode
	name string
	time time.Time
}

var _ inodefs.Node = (*File)(nil)

//CreateFile creates a new File holding content.
func CreateFile(content []byte, mode os.FileMode, name string) *File {
	return &File{s: content, perm: mode, name: name, time: time.Now()}
}

func (f *File) Size() int64 {
	f.RLock()
	defer f.RUnlock()
	return int64(len(f.s))
}

//grow must be called with f locked.
func (f *File) grow(n int64) error {
	if n > MaxSize {
		return inodefs.ErrInvalidArgument
	}
	old := int64(len(f.s))
	if old >= n {
		return nil
	}
	if int64(cap(f.s)) >= n {
		f.s = f.s[:n]
		clear(f.s[old:])
		return nil
	}
	f.s = append(f.s, make([]byte, n-old)...)
	return nil
}

func (f *File) WriteAt(b []byte, off int64) (n int, err error) {
	if off < 0 || off > MaxSize-int64(len(b)) {
		return 0, inodefs.ErrInvalidArgument
	}
	f.Lock()
	defer f.Unlock()
	if err = f.grow(off + int64(len(b))); err != nil {
		return 0, err
	}
	f.time = time.Now()
	n = copy(f.s[off:], b)
	return
}

func (f *File) ReadAt(b []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, inodefs.ErrInvalidArgument
	}
	f.RLock()
	defer f.RUnlock()
	if off >= int64(len(f.s)) {
		return 0, nil
	}
	return copy(b, f.s[off:]), nil
}

func (f *File) Resize(size int64) error {
	if size < 0 || size > MaxSize {
		return inodefs.ErrInvalidArgument
	}
	f.Lock()
	defer f.Unlock()
	f.time = time.Now()
	if size > int64(len(f.s)) {
		return f.grow(size)
	}
	f.s = f.s[:size]
	return nil
}

func (f *File) Metadata() (os.FileInfo, error) {
	f.RLock()
	defer f.RUnlock()
	return &Stat{f.perm, f.name, f.time, int64(len(f.s)), f}, nil
}

//Chmod replaces the permission bits. Open handles keep their mode.
func (f *File) Chmod(mode os.FileMode) {
	f.Lock()
	f.perm = mode
	f.Unlock()
}

func (f *File) SyncAll() error  { return nil }
func (f *File) SyncData() error { return nil }

func (f *File) EntryNameAt(i int64) (string, error) { return "", inodefs.ErrNotDir }

//Bytes returns a copy of the content.
func (f *File) Bytes() []byte {
	f.RLock()
	defer f.RUnlock()
	b := make([]byte, len(f.s))
	copy(b, f.s)
	return b
}
