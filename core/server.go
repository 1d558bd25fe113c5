// Package core wires the HTTP message API to the physical display.
package core

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/juju/ratelimit"
	"josephlewis.net/lsd/core/config"
	"josephlewis.net/lsd/core/ipfilter"
	"josephlewis.net/lsd/core/logger"
)

// MessageBoard is the physical display the server pushes messages to.
type MessageBoard interface {
	Show(ctx context.Context, message string) error
	LastAcked() string
}

type Server struct {
	configuration *config.Configuration
	display       MessageBoard
	filter        *ipfilter.Filter
	events        *logger.Logger
	bucket        *ratelimit.Bucket
	toClose       listCloser

	httpServer *http.Server
}

func NewServer(configuration *config.Configuration, board MessageBoard, events *logger.Logger) (*Server, error) {
	filter, err := ipfilter.New(configuration.AllowedInet, configuration.AllowedInet6)
	if err != nil {
		return nil, err
	}

	server := &Server{
		configuration: configuration,
		display:       board,
		filter:        filter,
		events:        events,
		bucket: ratelimit.NewBucketWithRate(
			float64(configuration.MessagesPerMinute)/60.0,
			int64(configuration.MessageBurst)),
	}

	server.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", configuration.HTTPPort),
		Handler: server,
	}

	return server, nil
}

// AddCloser registers a resource to release on shutdown.
func (s *Server) AddCloser(c io.Closer) {
	s.toClose = append(s.toClose, c)
}

func (s *Server) Close() error {
	return s.toClose.Close()
}

func (s *Server) ListenAndServe() error {
	log.Printf("- Starting message API on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.Close()
	return s.httpServer.Shutdown(ctx)
}

// listCloser closes multiple resources, keeping the last error.
type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, c := range lc {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
