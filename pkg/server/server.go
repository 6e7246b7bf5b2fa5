//Package server exposes an inodefs.Fs over HTTP and 9P. Every request
//opens its own handle, so requests never share a cursor.
package server

import (
	"errors"
	"net/http"
	"os"

	"github.com/majiru/inodefs"
)

type Server struct {
	Fs inodefs.Fs
}

//remover is implemented by filesystems that can unlink paths.
type remover interface {
	Remove(path string) error
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, inodefs.ErrAccessDenied), errors.Is(err, os.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, os.ErrExist), errors.Is(err, inodefs.ErrIsDir), errors.Is(err, inodefs.ErrNotDir):
		return http.StatusConflict
	case errors.Is(err, inodefs.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
