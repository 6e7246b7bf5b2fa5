//Package inodefs defines the node contract and the open file interface
//shared by the handle layer and the filesystems built on top of it.
package inodefs

import (
	"errors"
	"os"
)

var (
	ErrAccessDenied    = errors.New("access denied")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoEntry         = errors.New("no such entry")
	ErrIsDir           = errors.New("is a directory")
	ErrNotDir          = errors.New("not a directory")
)

//OpError records the handle operation that failed and why.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "inodefs: " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

//Node holds the content, metadata and directory entries of a file.
//Nodes are shared between handles and must do their own locking.
//
//Unlike io.ReaderAt, ReadAt returns a short count with a nil error at
//the end of content. When an error is returned the count is ignored.
type Node interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Metadata() (os.FileInfo, error)
	Resize(size int64) error
	SyncAll() error
	SyncData() error
	//EntryNameAt returns the name of the i'th entry of a directory,
	//or ErrNoEntry once i is past the last entry.
	EntryNameAt(i int64) (string, error)
}

//Options is the access mode of an open file. It never changes after open.
type Options struct {
	Read   bool
	Write  bool
	Append bool
}

type Whence int

const (
	SeekStart Whence = iota
	SeekCurrent
	SeekEnd
)

//SeekFrom is a seek target relative to Whence.
type SeekFrom struct {
	Whence Whence
	Offset int64
}

func Start(n int64) SeekFrom       { return SeekFrom{SeekStart, n} }
func Current(delta int64) SeekFrom { return SeekFrom{SeekCurrent, delta} }
func End(delta int64) SeekFrom     { return SeekFrom{SeekEnd, delta} }

//File is an open file description.
type File interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	ReadVectored(bufs [][]byte) (int, error)
	WriteVectored(bufs [][]byte) (int, error)
	Seek(pos SeekFrom) (int64, error)
	Metadata() (os.FileInfo, error)
	SetLength(size int64) error
	SyncAll() error
	SyncData() error
	ReadEntry() (string, error)
	Close() error
}

//Fs resolves slash separated paths to nodes.
type Fs interface {
	Walk(path string) (Node, error)
}

//Creator is implemented by filesystems that can make new nodes.
type Creator interface {
	Create(path string, perm os.FileMode) (Node, error)
}

//Stat walks to path and returns the node's metadata.
func Stat(fs Fs, path string) (os.FileInfo, error) {
	n, err := fs.Walk(path)
	if err != nil {
		return nil, err
	}
	return n.Metadata()
}
