package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/session"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Generator produces lesson plans for POST /api/lessons.
type Generator interface {
	Generate(ctx context.Context, r lessongen.Request) (*lessonplan.LessonPlan, error)
}

type Config struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Server exposes one Session over HTTP and a websocket state stream.
type Server struct {
	cfg       Config
	session   *session.Session
	generator Generator
	log       *logger.Logger
	engine    *gin.Engine
	upgrader  websocket.Upgrader

	closing   chan struct{}
	closeOnce sync.Once
}

// New builds the router. gen may be nil, in which case POST /api/lessons
// answers 503 and plans must be posted to /api/session.
func New(cfg Config, sess *session.Session, gen Generator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	s := &Server{
		cfg:       cfg,
		session:   sess,
		generator: gen,
		log:       log.With("component", "http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		closing: make(chan struct{}),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.AllowedOrigins))

	r.GET("/healthz", s.health)
	r.GET("/ws", s.stream)

	api := r.Group("/api")
	{
		api.POST("/lessons", s.generateLesson)

		api.GET("/session", s.getState)
		api.POST("/session", s.startSession)
		api.DELETE("/session", s.resetSession)
		api.POST("/session/advance", s.advance)
		api.POST("/session/complete", s.complete)

		chron := api.Group("/session/chronology")
		chron.POST("/place", s.placeItem)
		chron.POST("/unplace", s.unplaceItem)
		chron.POST("/verify", s.verifyOrder)
		chron.POST("/reset", s.resetOrder)

		quiz := api.Group("/session/quiz")
		quiz.POST("/select", s.selectAnswer)
		quiz.POST("/submit", s.submitAnswer)
		quiz.POST("/next", s.nextQuestion)

		ff := api.Group("/session/fastest-finger")
		ff.POST("/pick", s.pickConcept)
		ff.POST("/next", s.nextConcept)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// open websocket streams.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeStreams)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) closeStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}
