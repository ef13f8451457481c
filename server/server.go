// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dawstream/dawstream/config"
	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/trackstore"
	"github.com/dawstream/dawstream/version"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ServerError is the pattern for errors returned by Run().
const ServerError = "server: %v"

// DefaultTrack is the name under which the /tracks service saves and restores
// a track.
const DefaultTrack = "default"

// time allowed for open requests to complete when the server is stopped
const shutdownTimeout = 5 * time.Second

const logTag = "server"

// Server handles HTTP requests. Use Handler() to serve requests with an
// existing http.Server or Run() to start a new one.
type Server struct {
	cfg      config.Config
	store    *trackstore.Store
	router   *gin.Engine
	upgrader websocket.Upgrader

	// permission for the per-request log entry
	requests logger.Toggle
}

// NewServer is the preferred method of initialisation for the Server type.
func NewServer(cfg config.Config, store *trackstore.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	srv := &Server{
		cfg:    cfg,
		store:  store,
		router: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}

	// the upgrader will only check for a same-origin request if CheckOrigin
	// is nil
	if len(cfg.Origins) > 0 {
		srv.upgrader.CheckOrigin = srv.checkOrigin
	}

	srv.requests.Set(true)
	srv.router.Use(gin.Recovery(), requestLogger(&srv.requests))

	srv.router.GET("/ws", srv.stream)
	srv.router.GET("/tracks", srv.restore)
	srv.router.POST("/tracks", srv.save)
	srv.router.GET("/version", func(c *gin.Context) {
		v, r, _ := version.Version()
		c.JSON(http.StatusOK, gin.H{
			"application": version.ApplicationName,
			"version":     v,
			"revision":    r,
		})
	})

	if cfg.Assets != "" {
		files := http.FileServer(http.Dir(cfg.Assets))
		srv.router.NoRoute(gin.WrapH(files))
		logger.Logf(logger.Allow, logTag, "serving assets from %s", cfg.Assets)
	} else {
		srv.router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
		})
	}

	return srv
}

// an origin is allowed if it is in the list of origins or if the list
// contains the wildcard
func (srv *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(srv.cfg.Origins, origin) || slices.Contains(srv.cfg.Origins, "*")
}

// log each request once it has been handled
func requestLogger(perm logger.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Logf(perm, logTag, "%s %s %d (%s) from %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.ClientIP())
	}
}

// Handler returns the http.Handler for the server.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Run the server on the configured address until the context is cancelled.
// Open websocket connections are closed when the context is cancelled.
func (srv *Server) Run(ctx context.Context) error {
	hs := &http.Server{
		Addr:    srv.cfg.Addr,
		Handler: srv.router,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- hs.ListenAndServe()
	}()

	logger.Logf(logger.Allow, logTag, "listening on %s", srv.cfg.Addr)

	select {
	case err := <-done:
		return curated.Errorf(ServerError, err)
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := hs.Shutdown(shutdown)
	if err != nil {
		return curated.Errorf(ServerError, err)
	}

	// ListenAndServe() returns immediately after Shutdown() is called
	err = <-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return curated.Errorf(ServerError, err)
	}

	logger.Log(logger.Allow, logTag, "stopped")

	return nil
}
