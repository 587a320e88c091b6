package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

type stubServer struct {
	listenErr   error
	shutdownErr error

	listened bool
	shutdown bool
	closed   bool
}

func (s *stubServer) ListenAndServe() error {
	s.listened = true
	return s.listenErr
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.shutdown = true
	return s.shutdownErr
}

func (s *stubServer) Close() error {
	s.closed = true
	return nil
}

func (s *stubServer) Addr() string { return ":0" }

func TestRunBootstrapFailure(t *testing.T) {
	build := func() (httpServer, func(), error) {
		return nil, nil, errors.New("boom")
	}
	if code := Run(build, make(chan os.Signal, 1), zerolog.Nop()); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunGracefulShutdownOnSignal(t *testing.T) {
	// signal already queued so Run takes the shutdown path immediately
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	srv := &stubServer{listenErr: http.ErrServerClosed}
	cleaned := false
	build := func() (httpServer, func(), error) {
		return srv, func() { cleaned = true }, nil
	}

	if code := Run(build, sigCh, zerolog.Nop()); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !srv.listened || !srv.shutdown {
		t.Fatalf("listened=%v shutdown=%v", srv.listened, srv.shutdown)
	}
	if srv.closed {
		t.Fatal("Close must not run when Shutdown succeeds")
	}
	if !cleaned {
		t.Fatal("cleanup not called")
	}
}

func TestRunServerCrash(t *testing.T) {
	srv := &stubServer{listenErr: errors.New("bind: address already in use")}
	build := func() (httpServer, func(), error) {
		return srv, func() {}, nil
	}

	if code := Run(build, make(chan os.Signal, 1), zerolog.Nop()); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if srv.shutdown {
		t.Fatal("crash path must not attempt graceful shutdown")
	}
}

func TestRunForcesCloseWhenShutdownFails(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	srv := &stubServer{
		listenErr:   http.ErrServerClosed,
		shutdownErr: errors.New("connections still draining"),
	}
	build := func() (httpServer, func(), error) {
		return srv, func() {}, nil
	}

	_ = Run(build, sigCh, zerolog.Nop())
	if !srv.closed {
		t.Fatal("Close must run when Shutdown fails")
	}
}
