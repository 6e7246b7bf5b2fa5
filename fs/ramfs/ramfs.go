//Package ramfs is a mutable in memory tree of fsutil nodes.
package ramfs

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/pkg/fsutil"
)

type Ramfs struct {
	sync.RWMutex
	Root *fsutil.Dir
}

var DirExists = errors.New("File exists already as dir")
var FileExists = errors.New("Dir exists already as file")

func New() *Ramfs {
	return &Ramfs{Root: fsutil.CreateDir("/")}
}

func clean(path string) (parts []string) {
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return
}

//FindOrCreate walks to path, creating missing parent directories and
//the final node with perm if it does not exist.
func (r *Ramfs) FindOrCreate(path string, isDir bool, perm os.FileMode) (inodefs.Node, error) {
	r.Lock()
	defer r.Unlock()
	dir := r.Root
	parts := clean(path)
	if len(parts) == 0 {
		if !isDir {
			return nil, DirExists
		}
		return dir, nil
	}
	for _, p := range parts[:len(parts)-1] {
		n, err := dir.Find(p)
		if err != nil {
			sub := fsutil.CreateDir(p)
			dir.Append(sub)
			dir = sub
			continue
		}
		sub, ok := n.(*fsutil.Dir)
		if !ok {
			return nil, FileExists
		}
		dir = sub
	}
	name := parts[len(parts)-1]
	if n, err := dir.Find(name); err == nil {
		_, nIsDir := n.(*fsutil.Dir)
		switch {
		case isDir && !nIsDir:
			return nil, FileExists
		case !isDir && nIsDir:
			return nil, DirExists
		}
		return n, nil
	}
	if isDir {
		d := fsutil.CreateDir(name)
		dir.Append(d)
		return d, nil
	}
	f := fsutil.CreateFile([]byte{}, perm.Perm(), name)
	dir.Append(f)
	return f, nil
}

func (r *Ramfs) Walk(path string) (inodefs.Node, error) {
	r.RLock()
	defer r.RUnlock()
	return r.Root.Walk(path)
}

func (r *Ramfs) Create(path string, perm os.FileMode) (inodefs.Node, error) {
	return r.FindOrCreate(path, perm.IsDir(), perm)
}

func (r *Ramfs) Mkdir(path string) error {
	_, err := r.FindOrCreate(path, true, os.ModeDir|0755)
	return err
}

//Remove unlinks path from its parent. Open handles on it keep working.
func (r *Ramfs) Remove(path string) error {
	parts := clean(path)
	if len(parts) == 0 {
		return os.ErrPermission
	}
	r.Lock()
	defer r.Unlock()
	parent, err := r.Root.WalkForDir(strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return err
	}
	return parent.Remove(parts[len(parts)-1])
}
