package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/vignette/internal/api"
)

// listenAddr resolves the address to bind. Explicit flags win over the
// config file and PORT overrides the port of either.
func listenAddr(cmd *cobra.Command, configured string) string {
	host, port, err := net.SplitHostPort(configured)
	if err != nil {
		host, port = "", "8080"
	}
	if cmd.Flags().Changed("listen") {
		host = listen
		if host == "all" {
			host = ""
		}
	}
	if cmd.Flags().Changed("listen-port") {
		port = strconv.Itoa(listenPort)
	}
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}
	return net.JoinHostPort(host, port)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	reg, err := buildRegistry(cfg, log)
	if err != nil {
		return err
	}
	raster, err := newRasterizer(cfg, log)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, api.NewServer(reg, raster, cfg.ExportPrefix, log))

	srv := &http.Server{
		Addr:    listenAddr(cmd, cfg.ListenAddr),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "data_dir", cfg.DataDir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
