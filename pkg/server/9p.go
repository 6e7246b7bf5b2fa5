package server

import (
	"log"
	"os"

	"aqwari.net/net/styx"
	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/pkg/handle"
)

//open9P wraps a fresh handle in what styx expects for files or dirs.
func (srv Server) open9P(name string, flag int, perm os.FileMode) (interface{}, error) {
	h, err := handle.OpenFile(srv.Fs, name, flag, perm)
	if err != nil {
		return nil, err
	}
	fi, err := h.Metadata()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return handle.NewDir(srv.Fs, name, h), nil
	}
	return handle.NewStream(h), nil
}

func (srv Server) truncate(name string, size int64) error {
	h, err := handle.OpenFile(srv.Fs, name, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.SetLength(size)
}

func (srv Server) sync(name string) error {
	h, err := handle.OpenFile(srv.Fs, name, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.SyncAll()
}

func (srv Server) Serve9P(s *styx.Session) {
	for s.Next() {
		msg := s.Request()
		switch t := msg.(type) {
		case styx.Twalk:
			t.Rwalk(inodefs.Stat(srv.Fs, msg.Path()))
		case styx.Tstat:
			t.Rstat(inodefs.Stat(srv.Fs, msg.Path()))
		case styx.Topen:
			t.Ropen(srv.open9P(msg.Path(), t.Flag, 0))
		case styx.Tcreate:
			t.Rcreate(srv.open9P(t.NewPath(), t.Flag|os.O_CREATE|os.O_EXCL, t.Mode))
		case styx.Ttruncate:
			t.Rtruncate(srv.truncate(msg.Path(), t.Size))
		case styx.Tsync:
			t.Rsync(srv.sync(msg.Path()))
		case styx.Tremove:
			rm, ok := srv.Fs.(remover)
			if !ok {
				t.Rremove(os.ErrPermission)
				continue
			}
			t.Rremove(rm.Remove(msg.Path()))
		default:
			log.Printf("9p: unhandled %T for %s", msg, msg.Path())
		}
	}
}
