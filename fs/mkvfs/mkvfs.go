//Package mkvfs serves the element tree of a Matroska file. The path of
//the file to parse is written to the control file /mkv; the tree is
//rebuilt on the next walk after the control file changes.
package mkvfs

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/pkg/fsutil"
	"github.com/majiru/inodefs/pkg/handle"
	"github.com/remko/go-mkvparse"
)

type MKVfs struct {
	*sync.RWMutex
	root       *fsutil.Dir
	rawpath    *fsutil.File
	lastupdate time.Time
	parse      func(path string, h mkvparse.Handler) error
}

func NewMKVfs() *MKVfs {
	m := MKVfs{
		&sync.RWMutex{},
		nil,
		fsutil.CreateFile([]byte(""), 0644, "mkv"),
		time.Time{},
		mkvparse.ParsePath,
	}
	m.lastupdate = modtime(m.rawpath)
	m.root = fsutil.CreateDir("/", m.rawpath)
	return &m
}

func modtime(n inodefs.Node) time.Time {
	fi, err := n.Metadata()
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

func (fs *MKVfs) decode() error {
	b, err := handle.ReadAll(fs.rawpath)
	if err != nil {
		return err
	}
	root := fsutil.CreateDir("/", fs.rawpath)
	path := strings.TrimSpace(string(b))
	if path != "" {
		if err = fs.parse(path, NewTreeParser(root)); err != nil {
			return err
		}
	}
	fs.root = root
	return nil
}

func (fs *MKVfs) check() error {
	fs.Lock()
	defer fs.Unlock()
	mt := modtime(fs.rawpath)
	if !mt.After(fs.lastupdate) {
		return nil
	}
	log.Println("Doing update")
	if err := fs.decode(); err != nil {
		return err
	}
	fs.lastupdate = mt
	return nil
}

func (fs *MKVfs) Walk(fpath string) (inodefs.Node, error) {
	if err := fs.check(); err != nil {
		return nil, err
	}
	fs.RLock()
	defer fs.RUnlock()
	return fs.root.Walk(fpath)
}
