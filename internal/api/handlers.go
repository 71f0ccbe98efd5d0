package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/export"
	imagepkg "github.com/youruser/vignette/internal/image"
	"github.com/youruser/vignette/internal/themes"
)

var errUnknownPreset = errors.New("unknown preset")

// Server is the editor shell: it owns card state per request or live
// session and drives the theme views.
type Server struct {
	themes   *themes.Registry
	raster   export.Rasterizer
	prefix   string
	log      *slog.Logger
	now      func() time.Time
	upgrader websocket.Upgrader
}

func NewServer(reg *themes.Registry, raster export.Rasterizer, prefix string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		themes: reg,
		raster: raster,
		prefix: prefix,
		log:    log,
		now:    time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// renderRequest starts from the theme's default state, replaces it with
// State when given and then applies Preset.
type renderRequest struct {
	State  *cards.CardState `json:"state"`
	Preset string           `json:"preset"`
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) theme(c *gin.Context) (themes.ThemeConfig, bool) {
	t, ok := s.themes.GetTheme(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown theme %q", c.Param("id"))})
	}
	return t, ok
}

func (s *Server) listThemes(c *gin.Context) {
	all := s.themes.GetAllThemes()
	c.JSON(http.StatusOK, gin.H{"count": len(all), "themes": all})
}

func (s *Server) getTheme(c *gin.Context) {
	t, ok := s.theme(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) filterPresets(c *gin.Context) {
	t, ok := s.theme(c)
	if !ok {
		return
	}
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.FilterPresets(t.Presets, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "presets": out})
}

// resolveState builds and validates the state a request asks for.
func resolveState(t themes.ThemeConfig, req renderRequest) (cards.CardState, error) {
	state := t.NewState()
	if req.State != nil {
		state = req.State.Clone()
	}
	if req.Preset != "" {
		p, ok := t.Preset(req.Preset)
		if !ok {
			return cards.CardState{}, fmt.Errorf("%w %q", errUnknownPreset, req.Preset)
		}
		state = p.Apply(state)
	}
	if err := state.Validate(); err != nil {
		return cards.CardState{}, err
	}
	return state, nil
}

// draw renders state into a fresh view and returns its export handle.
func (s *Server) draw(c *gin.Context) (themes.Handle, cards.CardState, bool) {
	t, ok := s.theme(c)
	if !ok {
		return themes.Handle{}, cards.CardState{}, false
	}
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return themes.Handle{}, cards.CardState{}, false
	}
	state, err := resolveState(t, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return themes.Handle{}, cards.CardState{}, false
	}
	view := themes.NewView(t, s.raster, s.log)
	if err := view.Render(state); err != nil {
		s.log.Warn("render failed", "theme", t.ID, "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "renderer not ready, try again"})
		return themes.Handle{}, cards.CardState{}, false
	}
	return view.Handle(), state, true
}

func (s *Server) renderHandler(c *gin.Context) {
	h, _, ok := s.draw(c)
	if !ok {
		return
	}
	b, ok := h.ExportPNG()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export failed, try again"})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) exportHandler(c *gin.Context) {
	h, state, ok := s.draw(c)
	if !ok {
		return
	}
	uri, ok := h.ExportImage()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export failed, try again"})
		return
	}
	w, ht := cards.Resolve(state.Style.AspectRatio)
	c.JSON(http.StatusOK, gin.H{
		"filename": s.filename(c.Param("id"), state),
		"dataUri":  uri,
		"width":    w * export.Oversample,
		"height":   ht * export.Oversample,
	})
}

// filename names an export after its first header line.
func (s *Server) filename(themeID string, state cards.CardState) string {
	var primary string
	if len(state.HeaderLines) > 0 {
		primary = state.HeaderLines[0]
	}
	return export.Filename(s.prefix, primary, themeID, s.now())
}

// qr endpoint returns a PNG QR code pointing at the theme's editor page.
func (s *Server) qrHandler(c *gin.Context) {
	t, ok := s.theme(c)
	if !ok {
		return
	}
	base := c.Query("base")
	if base == "" {
		base = "http://" + c.Request.Host
	}
	size := 256
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(imagepkg.EditorURL(base, t.ID), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
