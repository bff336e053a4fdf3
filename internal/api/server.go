package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/partscribe/internal/config"
	"github.com/user/partscribe/internal/domain"
)

// Describer runs the describe pipeline for one query.
type Describer interface {
	Describe(ctx context.Context, q domain.Query) (*domain.PipelineResult, error)
}

// Pinger reports backend reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	pipeline   Describer
	llm        Pinger
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, p Describer, llm Pinger, l *zap.Logger) *Server {
	s := &Server{
		config:   cfg,
		pipeline: p,
		llm:      llm,
		logger:   l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
