package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/majiru/inodefs/fs/ramfs"
	"github.com/majiru/inodefs/pkg/fsutil"
)

const m1 = "Hello World"
const m2 = "World Hello"

func testServer() (*httptest.Server, *ramfs.Ramfs) {
	fs := ramfs.New()
	fs.Root.Append(fsutil.CreateFile([]byte(m1), 0644, "index.html"))
	fs.Root.Append(fsutil.CreateFile([]byte(m1), 0444, "readonly"))
	return httptest.NewServer(Server{fs}), fs
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	resp, err := c.Get(url)
	if err != nil {
		t.Fatal("error performing get:", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal("could not read response:", err)
	}
	return resp.StatusCode, string(b)
}

func TestGET(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	code, body := get(t, srv.Client(), srv.URL+"/index.html")
	if code != http.StatusOK || body != m1 {
		t.Fatalf("Content mismatch: %d %q", code, body)
	}
}

func TestGETRange(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	req, _ := http.NewRequest("GET", srv.URL+"/index.html", nil)
	req.Header.Set("Range", "bytes=6-")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal("error performing get:", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusPartialContent || string(b) != "World" {
		t.Fatalf("Range mismatch: %d %q", resp.StatusCode, b)
	}
}

func TestGETDir(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	code, body := get(t, srv.Client(), srv.URL+"/")
	if code != http.StatusOK || body != "index.html\nreadonly\n" {
		t.Fatalf("listing mismatch: %d %q", code, body)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	if code, _ := get(t, srv.Client(), srv.URL+"/nothere"); code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", code)
	}
	nf := httptest.NewServer(Server{NotFoundFs{}})
	defer nf.Close()
	if code, _ := get(t, nf.Client(), nf.URL+"/index.html"); code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", code)
	}
	ef := httptest.NewServer(Server{ErrFs{}})
	defer ef.Close()
	if code, _ := get(t, ef.Client(), ef.URL+"/index.html"); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", code)
	}
}

func TestPOST(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	resp, err := srv.Client().Post(srv.URL+"/index.html", "text/plain", strings.NewReader(m2))
	if err != nil {
		t.Fatal("Error performing post:", err)
	}
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal("error reading post:", err)
	}
	if string(b) != m1+m2 {
		t.Fatalf("content mismatch: saw %s, expected %s", string(b), m1+m2)
	}
}

func TestPut(t *testing.T) {
	srv, fs := testServer()
	defer srv.Close()
	c := srv.Client()
	c.Timeout = 5 * time.Second
	req, err := http.NewRequest("PUT", srv.URL+"/new/file", strings.NewReader(m2))
	if err != nil {
		t.Fatal("could not create req:", err)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatal("could not perform http request:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}
	f, err := fs.Root.WalkForFile("/new/file")
	if err != nil {
		t.Fatal("put did not create file:", err)
	}
	if string(f.Bytes()) != m2 {
		t.Fatal("content mismatch")
	}

	req, _ = http.NewRequest("PUT", srv.URL+"/readonly", strings.NewReader(m2))
	resp, err = c.Do(req)
	if err != nil {
		t.Fatal("could not perform http request:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.StatusCode)
	}
}

func TestWriteDir(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	c := srv.Client()
	c.Timeout = 5 * time.Second
	for _, method := range []string{"PUT", "POST"} {
		req, err := http.NewRequest(method, srv.URL+"/", strings.NewReader(m2))
		if err != nil {
			t.Fatal("could not create req:", err)
		}
		resp, err := c.Do(req)
		if err != nil {
			t.Fatal("could not perform http request:", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("%s to a directory: expected 409 got %d", method, resp.StatusCode)
		}
	}
}

func TestDelete(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	c := srv.Client()
	req, _ := http.NewRequest("DELETE", srv.URL+"/index.html", nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatal("could not perform http request:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}
	if code, _ := get(t, c, srv.URL+"/index.html"); code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", code)
	}
}

func TestMultipart(t *testing.T) {
	srv, _ := testServer()
	defer srv.Close()
	c := srv.Client()
	c.Timeout = 5 * time.Second
	buf := &bytes.Buffer{}
	mp := multipart.NewWriter(buf)

	part, err := mp.CreateFormFile("danny", "bliss")
	if err != nil {
		t.Fatal("creating file:", err)
	}
	part.Write([]byte(m2))
	mp.Close()

	req, err := http.NewRequest("PUT", srv.URL+"/index.html", buf)
	if err != nil {
		t.Fatal("creating req:", err)
	}
	req.Header.Set("Content-Type", mp.FormDataContentType())
	resp, err := c.Do(req)
	if err != nil {
		t.Fatal("doing req:", err)
	}
	resp.Body.Close()

	//To test seeking we request the file twice
	for i := 0; i < 2; i++ {
		if _, body := get(t, c, srv.URL+"/index.html"); body != m2 {
			t.Fatalf("content mismatch: %q", body)
		}
	}
}
