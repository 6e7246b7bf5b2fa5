package fsutil

import (
	"os"
	"time"
)

//Stat implements os.FileInfo
type Stat struct {
	perm os.FileMode
	name string
	time time.Time
	size int64
	Node interface{}
}

//NewStat builds a standalone Stat, for nodes that are not from this package.
func NewStat(name string, perm os.FileMode, size int64, mtime time.Time, node interface{}) *Stat {
	return &Stat{perm, name, mtime, size, node}
}

func (s Stat) Name() string     { return s.name }
func (s Stat) Sys() interface{} { return s.Node }

func (s Stat) ModTime() time.Time { return s.time }

func (s Stat) Mode() os.FileMode { return s.perm }

func (s Stat) IsDir() bool { return s.perm.IsDir() }

func (s Stat) Size() int64 { return s.size }
