package server

import (
	"context"
	"net/http"
	"time"
)

const shutdownTimeout = 3 * time.Second

type Server struct {
	httpServer *http.Server
	notify     chan error
}

func New(address string, timeout, idleTimeout time.Duration, handler http.Handler) *Server {
	httpServer := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		notify:     make(chan error, 1),
	}
}

func (s *Server) Start() {
	go func() {
		s.notify <- s.httpServer.ListenAndServe()
		close(s.notify)
	}()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
