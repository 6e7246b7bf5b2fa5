package handle

import (
	"errors"
	"io"
	"os"
	"path"

	"github.com/majiru/inodefs"
)

//Stream adapts a Handle to the io interfaces, which expect io.EOF
//instead of an empty read at the end of content and an error on any
//short write.
type Stream struct {
	*Handle
}

func NewStream(h *Handle) Stream { return Stream{h} }

func (s Stream) Read(p []byte) (int, error) {
	n, err := s.Handle.Read(p)
	if err == nil && n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

func (s Stream) Write(p []byte) (int, error) {
	n, err := s.Handle.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

func (s Stream) ReadAt(p []byte, off int64) (int, error) {
	n, err := s.Handle.ReadAt(p, off)
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

func (s Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		return s.Handle.Seek(inodefs.Start(offset))
	case io.SeekCurrent:
		return s.Handle.Seek(inodefs.Current(offset))
	case io.SeekEnd:
		return s.Handle.Seek(inodefs.End(offset))
	}
	return 0, invalid("seek")
}

var (
	_ io.ReadWriteSeeker = Stream{}
	_ io.ReaderAt        = Stream{}
	_ io.WriterAt        = Stream{}
	_ io.Closer          = Stream{}
)

//Dir lists a directory handle the way os.File.Readdir does.
type Dir struct {
	h    *Handle
	fsys inodefs.Fs
	name string
}

//NewDir wraps h, which must have been opened on name in fsys.
func NewDir(fsys inodefs.Fs, name string, h *Handle) *Dir {
	return &Dir{h, fsys, name}
}

//Readdir returns up to n entries, or all remaining ones if n <= 0.
func (d *Dir) Readdir(n int) ([]os.FileInfo, error) {
	var fi []os.FileInfo
	for n <= 0 || len(fi) < n {
		name, err := d.h.ReadEntry()
		if errors.Is(err, inodefs.ErrNoEntry) {
			if n > 0 && len(fi) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return fi, err
		}
		s, err := inodefs.Stat(d.fsys, path.Join(d.name, name))
		if err != nil {
			return fi, err
		}
		fi = append(fi, s)
	}
	return fi, nil
}

func (d *Dir) Stat() (os.FileInfo, error) { return d.h.Metadata() }

func (d *Dir) Close() error { return d.h.Close() }
