//Package chanfile wraps a node so that every content request must be
//approved by a process reading from the Req channel.
package chanfile

import (
	"os"
	"sync"

	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/pkg/fsutil"
)

const (
	//ReqMsg
	Read = iota
	Write
	Trunc
	Sync

	//RecvMsg
	Commit
	Discard
)

type ReqMsg struct {
	Type   int
	Offset int64
	Len    int64
	//Only populated on writes
	Content []byte
}

//RecvMsg answers a ReqMsg. A non nil Err is returned to the caller as is.
type RecvMsg struct {
	Type int
	Err  error
}

type File struct {
	Node inodefs.Node
	Req  chan ReqMsg
	Recv chan RecvMsg

	//one request in flight at a time so replies pair up
	mu sync.Mutex
}

var _ inodefs.Node = (*File)(nil)

func CreateFile(content []byte, mode os.FileMode, name string) *File {
	return WrapNode(fsutil.CreateFile(content, mode, name))
}

func WrapNode(n inodefs.Node) *File {
	return &File{
		Node: n,
		Req:  make(chan ReqMsg),
		Recv: make(chan RecvMsg),
	}
}

//ask sends m and reports whether the request was committed.
func (f *File) ask(m ReqMsg) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Req <- m
	r := <-f.Recv
	if r.Err != nil {
		return false, r.Err
	}
	return r.Type == Commit, nil
}

func (f *File) ReadAt(b []byte, off int64) (int, error) {
	ok, err := f.ask(ReqMsg{Read, off, int64(len(b)), nil})
	if !ok {
		return 0, err
	}
	return f.Node.ReadAt(b, off)
}

func (f *File) WriteAt(b []byte, off int64) (int, error) {
	ok, err := f.ask(ReqMsg{Write, off, int64(len(b)), b})
	if !ok {
		return 0, err
	}
	return f.Node.WriteAt(b, off)
}

func (f *File) Resize(size int64) error {
	ok, err := f.ask(ReqMsg{Trunc, 0, size, nil})
	if !ok {
		return err
	}
	return f.Node.Resize(size)
}

func (f *File) SyncAll() error {
	ok, err := f.ask(ReqMsg{Sync, 0, 0, nil})
	if !ok {
		return err
	}
	return f.Node.SyncAll()
}

func (f *File) SyncData() error {
	ok, err := f.ask(ReqMsg{Sync, 0, 0, nil})
	if !ok {
		return err
	}
	return f.Node.SyncData()
}

//Metadata and EntryNameAt do not change content, so we don't ask for permission
func (f *File) Metadata() (os.FileInfo, error) { return f.Node.Metadata() }

func (f *File) EntryNameAt(i int64) (string, error) { return f.Node.EntryNameAt(i) }
