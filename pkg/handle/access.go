package handle

import (
	"github.com/majiru/inodefs"
)

const (
	ownerRead  = 0400
	ownerWrite = 0200
)

func denied(op string) error {
	return &inodefs.OpError{Op: op, Err: inodefs.ErrAccessDenied}
}

func invalid(op string) error {
	return &inodefs.OpError{Op: op, Err: inodefs.ErrInvalidArgument}
}

func allow(n inodefs.Node, bit uint32) (bool, error) {
	fi, err := n.Metadata()
	if err != nil {
		return false, err
	}
	return uint32(fi.Mode().Perm())&bit == bit, nil
}

//AllowRead reports whether the node's owner read bit is set.
//Group and other bits are never consulted.
func AllowRead(n inodefs.Node) (bool, error) { return allow(n, ownerRead) }

//AllowWrite reports whether the node's owner write bit is set.
func AllowWrite(n inodefs.Node) (bool, error) { return allow(n, ownerWrite) }

//checkOpen matches the requested options against the node's permission bits.
func checkOpen(n inodefs.Node, opts inodefs.Options) error {
	if opts.Read {
		ok, err := AllowRead(n)
		if err != nil {
			return err
		}
		if !ok {
			return denied("open")
		}
	}
	if opts.Write {
		ok, err := AllowWrite(n)
		if err != nil {
			return err
		}
		if !ok {
			return denied("open")
		}
	}
	return nil
}

func (h *Handle) canRead(op string) error {
	if !h.opts.Read {
		return denied(op)
	}
	return nil
}

func (h *Handle) canWrite(op string) error {
	if !h.opts.Write {
		return denied(op)
	}
	return nil
}
