// Package simserver is a demo backend simulator for the AutoCare dashboard.
//
// It implements the four REST endpoints the dashboard consumes with the same
// semantics as the production prediction/scheduling service, so demos and
// end-to-end tests run without external infrastructure. It is dev tooling,
// not the product backend.
package simserver

import (
	"context"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server serves the simulated AutoCare backend API.
type Server struct {
	addr   string
	log    zerolog.Logger
	server *http.Server

	now  func() time.Time
	rand *rand.Rand

	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithRand overrides the randomness source (tests).
func WithRand(r *rand.Rand) Option {
	return func(s *Server) { s.rand = r }
}

// NewServer creates a simulator bound to addr.
func NewServer(addr string, log zerolog.Logger, opts ...Option) *Server {
	if addr == "" {
		addr = "0.0.0.0:8000"
	}
	s := &Server{
		addr:     addr,
		log:      log,
		now:      time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		registry: prometheus.NewRegistry(),
	}
	s.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autocare_sim_requests_total",
		Help: "Requests served by the backend simulator.",
	}, []string{"path", "status"})
	s.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "autocare_sim_request_duration_seconds",
		Help:    "Request handling latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
	s.registry.MustRegister(s.requestsTotal, s.requestDuration)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin handler tree. Exposed separately so tests can drive
// handlers without binding a port.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	r.GET("/", s.handleHome)
	r.POST("/predict", s.handlePredict)
	r.GET("/insights", s.handleLegacyInsights)
	r.GET("/api/insights", s.handleInsights)
	r.GET("/api/schedule/slots", s.handleScheduleSlots)
	r.POST("/api/schedule/book", s.handleBookAppointment)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return r
}

// Start begins serving. It returns once the listener is bound.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.log.Info().Str("addr", s.addr).Msg("backend simulator listening")
	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// observe logs each request and records metrics.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		s.requestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
		s.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

		s.log.Info().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "Online",
		"message": "AutoCare.ai API is running on Localhost",
	})
}
