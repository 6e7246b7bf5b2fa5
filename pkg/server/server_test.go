package server

import (
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/majiru/inodefs"
)

// NotFoundFs allows for tests when every walk returns os.ErrNotExist
type NotFoundFs struct{}

func (fs NotFoundFs) Walk(path string) (inodefs.Node, error) {
	return nil, os.ErrNotExist
}

// ErrFs alows for tests on non os.ErrNotExist errors returned by the fs
type ErrFs struct{}

var ErrBogus = errors.New("bogus test error")

func (fs ErrFs) Walk(path string) (inodefs.Node, error) {
	return nil, ErrBogus
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{os.ErrNotExist, http.StatusNotFound},
		{&inodefs.OpError{Op: "write", Err: inodefs.ErrAccessDenied}, http.StatusForbidden},
		{os.ErrPermission, http.StatusForbidden},
		{os.ErrExist, http.StatusConflict},
		{inodefs.ErrIsDir, http.StatusConflict},
		{inodefs.ErrNotDir, http.StatusConflict},
		{&inodefs.OpError{Op: "seek", Err: inodefs.ErrInvalidArgument}, http.StatusBadRequest},
		{ErrBogus, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if code := httpStatus(tc.err); code != tc.code {
			t.Errorf("%v: expected %d got %d", tc.err, tc.code, code)
		}
	}
}
