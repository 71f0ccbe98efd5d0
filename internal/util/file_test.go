package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "card.png")
	test.Error(t, WriteFileAtomic(path, []byte("one")))
	test.Error(t, WriteFileAtomic(path, []byte("two")))

	b, err := os.ReadFile(path)
	test.Error(t, err)
	test.String(t, string(b), "two")

	_, err = os.Stat(path + ".tmp")
	test.That(t, os.IsNotExist(err))
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	b, err := GetBytes(srv.URL + "/ok")
	test.Error(t, err)
	test.String(t, string(b), "hello")

	_, err = GetBytes(srv.URL + "/missing")
	test.That(t, err != nil)
}
