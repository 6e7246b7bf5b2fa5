package handle

import (
	"errors"
	"os"

	"github.com/majiru/inodefs"
)

//OptionsFromFlag converts os.OpenFile style flags to Options.
func OptionsFromFlag(flag int) inodefs.Options {
	var opts inodefs.Options
	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_RDONLY:
		opts.Read = true
	case os.O_WRONLY:
		opts.Write = true
	case os.O_RDWR:
		opts.Read, opts.Write = true, true
	}
	opts.Append = flag&os.O_APPEND != 0
	return opts
}

//OpenFile resolves name in fsys and opens it the way os.OpenFile would.
//O_CREATE needs fsys to implement inodefs.Creator.
func OpenFile(fsys inodefs.Fs, name string, flag int, perm os.FileMode) (*Handle, error) {
	n, err := fsys.Walk(name)
	switch {
	case err == nil:
		if flag&(os.O_CREATE|os.O_EXCL) == os.O_CREATE|os.O_EXCL {
			return nil, os.ErrExist
		}
	case errors.Is(err, os.ErrNotExist) && flag&os.O_CREATE != 0:
		c, ok := fsys.(inodefs.Creator)
		if !ok {
			return nil, &inodefs.OpError{Op: "create", Err: os.ErrPermission}
		}
		if n, err = c.Create(name, perm); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	h, err := Open(n, OptionsFromFlag(flag))
	if err != nil {
		return nil, err
	}
	if flag&os.O_TRUNC != 0 && h.opts.Write {
		if err := h.SetLength(0); err != nil {
			return nil, err
		}
	}
	return h, nil
}
