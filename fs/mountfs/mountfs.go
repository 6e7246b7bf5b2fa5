//Package mountfs joins several filesystems under top level names.
package mountfs

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/pkg/fsutil"
)

type Mountfs struct {
	sync.RWMutex
	Mounts map[string]inodefs.Fs
}

func NewMountfs() *Mountfs {
	return &Mountfs{Mounts: make(map[string]inodefs.Fs)}
}

func (fs *Mountfs) Mount(name string, child inodefs.Fs) {
	fs.Lock()
	fs.Mounts[name] = child
	fs.Unlock()
}

//root lists the mount points as empty directories, sorted by name.
func (fs *Mountfs) root() *fsutil.Dir {
	names := make([]string, 0, len(fs.Mounts))
	for k := range fs.Mounts {
		names = append(names, k)
	}
	sort.Strings(names)
	root := fsutil.CreateDir("/")
	for _, k := range names {
		root.Append(fsutil.CreateDir(k))
	}
	return root
}

func (fs *Mountfs) path2fs(path string) (inodefs.Fs, string, error) {
	paths := strings.Split(strings.TrimPrefix(path, "/"), "/")
	child := fs.Mounts[paths[0]]
	if child == nil {
		return nil, "", os.ErrNotExist
	}
	return child, "/" + strings.Join(paths[1:], "/"), nil
}

func (fs *Mountfs) Walk(path string) (inodefs.Node, error) {
	fs.RLock()
	defer fs.RUnlock()
	if strings.Trim(path, "/") == "" {
		return fs.root(), nil
	}
	child, file, err := fs.path2fs(path)
	if err != nil {
		return nil, err
	}
	return child.Walk(file)
}

func (fs *Mountfs) Create(path string, perm os.FileMode) (inodefs.Node, error) {
	fs.RLock()
	defer fs.RUnlock()
	child, file, err := fs.path2fs(path)
	if err != nil {
		return nil, err
	}
	c, ok := child.(inodefs.Creator)
	if !ok || file == "/" {
		return nil, os.ErrPermission
	}
	return c.Create(file, perm)
}

//Remove forwards to the owning filesystem if it can unlink paths.
func (fs *Mountfs) Remove(path string) error {
	fs.RLock()
	defer fs.RUnlock()
	child, file, err := fs.path2fs(path)
	if err != nil {
		return err
	}
	rm, ok := child.(interface{ Remove(string) error })
	if !ok || file == "/" {
		return os.ErrPermission
	}
	return rm.Remove(file)
}
