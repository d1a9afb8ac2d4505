package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type Options struct {
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewServer(port int, ctrl controller.C, opts Options) (*Server, error) {
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	render := newRender()
	router := getRouter(ctrl, render, opts)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: opts.ShutdownTimeout,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			logrus.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	logrus.WithField("addr", s.server.Addr).Info("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New()
}
