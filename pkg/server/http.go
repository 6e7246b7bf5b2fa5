package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/majiru/inodefs/pkg/handle"
)

func (srv Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		log.Println("Error: " + err.Error() + " for request " + r.URL.Path)
	}
	http.Error(w, http.StatusText(code), code)
}

//listDir writes one entry name per line.
func (srv Server) listDir(w http.ResponseWriter, h *handle.Handle) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for {
		name, err := h.ReadEntry()
		if err != nil {
			return
		}
		fmt.Fprintln(w, name)
	}
}

func (srv Server) get(w http.ResponseWriter, r *http.Request, name string) {
	h, err := handle.OpenFile(srv.Fs, name, os.O_RDONLY, 0)
	if err != nil {
		srv.fail(w, r, err)
		return
	}
	defer h.Close()
	fi, err := h.Metadata()
	if err != nil {
		srv.fail(w, r, err)
		return
	}
	if fi.IsDir() {
		srv.listDir(w, h)
		return
	}
	http.ServeContent(w, r, name, fi.ModTime(), handle.NewStream(h))
}

//store copies the request body into name, opened with flag.
//As a special case, multipart uploads store every uploaded part.
func (srv Server) store(w http.ResponseWriter, r *http.Request, name string, flag int) bool {
	h, err := handle.OpenFile(srv.Fs, name, flag, 0644)
	if err != nil {
		srv.fail(w, r, err)
		return false
	}
	defer h.Close()
	s := handle.NewStream(h)
	if mr, err := r.MultipartReader(); err == nil {
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				srv.fail(w, r, err)
				return false
			}
			if _, err = io.Copy(s, p); err != nil {
				srv.fail(w, r, err)
				return false
			}
		}
	} else if _, err = io.Copy(s, r.Body); err != nil {
		srv.fail(w, r, err)
		return false
	}
	if err = h.SyncData(); err != nil {
		srv.fail(w, r, err)
		return false
	}
	return true
}

func (srv Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestedFile := path.Clean("/" + r.URL.Path)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		srv.get(w, r, requestedFile)
	//Post appends to the file and sends back the result.
	case http.MethodPost:
		if srv.store(w, r, requestedFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND) {
			srv.get(w, r, requestedFile)
		}
	//Put replaces the content of the file.
	case http.MethodPut:
		if srv.store(w, r, requestedFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC) {
			w.WriteHeader(http.StatusNoContent)
		}
	case http.MethodDelete:
		rm, ok := srv.Fs.(remover)
		if !ok {
			srv.fail(w, r, os.ErrPermission)
			return
		}
		if err := rm.Remove(requestedFile); err != nil {
			srv.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}
