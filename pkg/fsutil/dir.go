package fsutil

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/majiru/inodefs"
)

var (
	ErrCastDir  = errors.New("fsutil: not a directory")
	ErrCastFile = errors.New("fsutil: not a file")
)

//Dir is an in memory directory node. Entries keep insertion order.
type Dir struct {
	sync.RWMutex
	entries []inodefs.Node
	perm    os.FileMode
	name    string
	time    time.Time
}

var _ inodefs.Node = (*Dir)(nil)

//CreateDir creates a new Dir holding entries.
func CreateDir(name string, entries ...inodefs.Node) *Dir {
	return &Dir{entries: entries, perm: os.ModeDir | 0755, name: name, time: time.Now()}
}

func nameOf(n inodefs.Node) string {
	fi, err := n.Metadata()
	if err != nil {
		return ""
	}
	return fi.Name()
}

func (d *Dir) Metadata() (os.FileInfo, error) {
	d.RLock()
	defer d.RUnlock()
	return &Stat{d.perm, d.name, d.time, int64(len(d.entries)), d}, nil
}

func (d *Dir) EntryNameAt(i int64) (string, error) {
	d.RLock()
	defer d.RUnlock()
	if i < 0 || i >= int64(len(d.entries)) {
		return "", inodefs.ErrNoEntry
	}
	return nameOf(d.entries[i]), nil
}

func (d *Dir) ReadAt(b []byte, off int64) (int, error)  { return 0, inodefs.ErrIsDir }
func (d *Dir) WriteAt(b []byte, off int64) (int, error) { return 0, inodefs.ErrIsDir }
func (d *Dir) Resize(size int64) error                  { return inodefs.ErrIsDir }
func (d *Dir) SyncAll() error                           { return nil }
func (d *Dir) SyncData() error                          { return nil }

func (d *Dir) Append(entries ...inodefs.Node) {
	d.Lock()
	d.entries = append(d.entries, entries...)
	d.time = time.Now()
	d.Unlock()
}

//Remove drops the entry called name.
func (d *Dir) Remove(name string) error {
	d.Lock()
	defer d.Unlock()
	for i, n := range d.entries {
		if nameOf(n) == name {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			d.time = time.Now()
			return nil
		}
	}
	return os.ErrNotExist
}

//Find performs a 1 level deep search to find a node specified by name
func (d *Dir) Find(name string) (inodefs.Node, error) {
	d.RLock()
	defer d.RUnlock()
	for _, n := range d.entries {
		if nameOf(n) == name {
			return n, nil
		}
	}
	return nil, os.ErrNotExist
}

func search(target string, nodes []inodefs.Node) (inodefs.Node, error) {
	for _, n := range nodes {
		if nameOf(n) == target {
			return n, nil
		}
		if sub, ok := n.(*Dir); ok {
			if match, err := sub.Search(target); err == nil {
				return match, nil
			}
		}
	}
	return nil, os.ErrNotExist
}

//Search performs a recursive search into all subdirs looking for name.
//recursive descent is only possible if subdir is of type *Dir
func (d *Dir) Search(name string) (inodefs.Node, error) {
	return search(name, d.Copy())
}

func split(fpath string) (clean []string) {
	for _, parts := range strings.Split(fpath, "/") {
		if parts != "" {
			clean = append(clean, parts)
		}
	}
	return
}

//Walk resolves a slash separated path relative to d.
//An empty path or "/" resolves to d itself.
func (d *Dir) Walk(fpath string) (inodefs.Node, error) {
	var n inodefs.Node = d
	for _, part := range split(fpath) {
		subdir, ok := n.(*Dir)
		if !ok {
			return nil, ErrCastDir
		}
		var err error
		if n, err = subdir.Find(part); err != nil {
			return nil, os.ErrNotExist
		}
	}
	return n, nil
}

func (d *Dir) WalkForFile(fpath string) (*File, error) {
	n, err := d.Walk(fpath)
	if err != nil {
		return nil, err
	}
	f, ok := n.(*File)
	if !ok {
		return nil, ErrCastFile
	}
	return f, nil
}

func (d *Dir) WalkForDir(fpath string) (*Dir, error) {
	n, err := d.Walk(fpath)
	if err != nil {
		return nil, err
	}
	sub, ok := n.(*Dir)
	if !ok {
		return nil, ErrCastDir
	}
	return sub, nil
}

//Copy duplicates the held entry slice to the caller.
func (d *Dir) Copy() (out []inodefs.Node) {
	d.RLock()
	defer d.RUnlock()
	out = make([]inodefs.Node, len(d.entries))
	copy(out, d.entries)
	return
}
