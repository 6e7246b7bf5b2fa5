//Package diskfs exposes a host directory as inodefs nodes.
package diskfs

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/majiru/inodefs"
)

type Diskfs struct {
	Root string
}

func (fs *Diskfs) host(name string) string {
	return filepath.Join(fs.Root, filepath.FromSlash(path.Clean("/"+name)))
}

func (fs *Diskfs) Walk(name string) (inodefs.Node, error) {
	p := fs.host(name)
	if _, err := os.Lstat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return &Node{Path: p}, nil
}

func (fs *Diskfs) Create(name string, perm os.FileMode) (inodefs.Node, error) {
	p := fs.host(name)
	if perm.IsDir() {
		if err := os.MkdirAll(p, perm.Perm()); err != nil {
			return nil, err
		}
		return &Node{Path: p}, nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, perm.Perm())
	if err != nil {
		return nil, err
	}
	return &Node{Path: p}, f.Close()
}

//Node is a file or directory on the host. Every call opens the host
//file for the duration of the call, so a Node holds no descriptor.
type Node struct {
	Path string
}

var _ inodefs.Node = (*Node)(nil)

func (n *Node) open(flag int) (*os.File, error) {
	return os.OpenFile(n.Path, flag, 0)
}

func (n *Node) ReadAt(p []byte, off int64) (int, error) {
	f, err := n.open(os.O_RDONLY)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	c, err := f.ReadAt(p, off)
	if err == io.EOF {
		err = nil
	}
	return c, err
}

func (n *Node) WriteAt(p []byte, off int64) (int, error) {
	f, err := n.open(os.O_WRONLY)
	if err != nil {
		return 0, err
	}
	c, err := f.WriteAt(p, off)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return c, err
}

func (n *Node) Metadata() (os.FileInfo, error) {
	return os.Stat(n.Path)
}

func (n *Node) Resize(size int64) error {
	return os.Truncate(n.Path, size)
}

func (n *Node) SyncAll() error {
	f, err := n.open(os.O_RDONLY)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func (n *Node) SyncData() error {
	f, err := n.open(os.O_RDONLY)
	if err != nil {
		return err
	}
	defer f.Close()
	return datasync(f)
}

//EntryNameAt indexes the directory's entries sorted by name.
func (n *Node) EntryNameAt(i int64) (string, error) {
	f, err := n.open(os.O_RDONLY)
	if err != nil {
		return "", err
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return "", inodefs.ErrNotDir
	}
	if i < 0 || i >= int64(len(names)) {
		return "", inodefs.ErrNoEntry
	}
	sort.Strings(names)
	return names[i], nil
}
