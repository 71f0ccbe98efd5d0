package imagepkg

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/test"
)

func TestGenerateQR(t *testing.T) {
	b, err := GenerateQRPNG(EditorURL("http://localhost:8080/", "evangelion"), 0)
	test.Error(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	test.Error(t, err)
	test.T(t, cfg.Width, 256)

	b, err = GenerateQRPNG("twin-peaks", 128)
	test.Error(t, err)
	cfg, err = png.DecodeConfig(bytes.NewReader(b))
	test.Error(t, err)
	test.T(t, cfg.Width, 128)
}

func TestEditorURL(t *testing.T) {
	test.String(t, EditorURL("http://localhost:8080/", "twin-peaks"), "http://localhost:8080/twin-peaks")
	test.String(t, EditorURL("https://cards.example", "evangelion"), "https://cards.example/evangelion")
}

func TestLoadImage(t *testing.T) {
	src := imaging.New(20, 10, image.Black.C)
	path := filepath.Join(t.TempDir(), "bg.png")
	test.Error(t, imaging.Save(src, path))

	img, err := LoadImage(path)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 20)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err != nil)

	var buf bytes.Buffer
	test.Error(t, png.Encode(&buf, src))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	img, err = LoadImage(srv.URL + "/bg.png")
	test.Error(t, err)
	test.T(t, img.Bounds().Dy(), 10)

	_, err = LoadImage(srv.URL + "/nope.png")
	test.That(t, err != nil)
}
