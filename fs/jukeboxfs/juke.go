//Package jukeboxfs serves a music directory as a read only tree of
//album directories holding one node per tagged track.
package jukeboxfs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/fs/diskfs"
	"github.com/majiru/inodefs/pkg/fsutil"
)

type Jukefs struct {
	*sync.RWMutex
	path string
	root *fsutil.Dir
	info map[string]tag.Metadata
}

func NewJukefs(root string) (*Jukefs, error) {
	fs := &Jukefs{
		&sync.RWMutex{},
		root,
		fsutil.CreateDir("/"),
		make(map[string]tag.Metadata),
	}
	if err := fs.Rescan(); err != nil {
		return nil, err
	}
	return fs, nil
}

//Rescan reads the tags of every mp3 and flac file under the root again
//and rebuilds the tree. Handles opened on the old tree keep working.
func (fs *Jukefs) Rescan() error {
	info, err := readTags(fs.path)
	if err != nil {
		return err
	}
	fs.Lock()
	fs.info = info
	fs.root = buildTree(info)
	fs.Unlock()
	return nil
}

func isAudio(name string) bool {
	return strings.HasSuffix(name, "mp3") || strings.HasSuffix(name, "flac")
}

func readTags(root string) (map[string]tag.Metadata, error) {
	info := make(map[string]tag.Metadata)
	l := &sync.Mutex{}
	wg := &sync.WaitGroup{}
	err := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			log.Println("Could not open file:", err)
			return nil
		}
		if fi.IsDir() || !isAudio(fi.Name()) {
			return nil
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, openerr := os.Open(path)
			if openerr != nil {
				return
			}
			defer f.Close()
			m, parseerr := tag.ReadFrom(f)
			if parseerr != nil {
				log.Println("File:", path, "Could not be parsed")
				return
			}
			l.Lock()
			info[path] = m
			l.Unlock()
		}()
		return nil
	})
	wg.Wait()
	return info, err
}

func buildTree(info map[string]tag.Metadata) *fsutil.Dir {
	root := fsutil.CreateDir("/")
	albums := make(map[string]*fsutil.Dir)
	for path, m := range info {
		a := m.Album()
		if a == "" {
			a = "unknown"
		}
		d, ok := albums[a]
		if !ok {
			d = fsutil.CreateDir(a)
			albums[a] = d
			root.Append(d)
		}
		title := m.Title()
		if title == "" {
			title = filepath.Base(path)
		}
		d.Append(&track{&diskfs.Node{Path: path}, title})
	}
	return root
}

func (fs *Jukefs) Walk(fpath string) (inodefs.Node, error) {
	fs.RLock()
	defer fs.RUnlock()
	return fs.root.Walk(fpath)
}

//Tags returns the parsed tags keyed by host path.
func (fs *Jukefs) Tags() map[string]tag.Metadata {
	fs.RLock()
	defer fs.RUnlock()
	return fs.info
}

//track is a read only view of an audio file, named after its title.
type track struct {
	*diskfs.Node
	title string
}

func (t *track) Metadata() (os.FileInfo, error) {
	fi, err := t.Node.Metadata()
	if err != nil {
		return nil, err
	}
	return fsutil.NewStat(t.title, fi.Mode()&^0222, fi.Size(), fi.ModTime(), t), nil
}

func (t *track) WriteAt(p []byte, off int64) (int, error) { return 0, os.ErrPermission }
func (t *track) Resize(size int64) error                  { return os.ErrPermission }
