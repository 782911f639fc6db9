package status

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dx5r/hammesh/internal/observability"
)

// Server is the HTTP status surface for one node.
type Server struct {
	callsign string
	appeared time.Time
	recorder *Recorder
	router   *gin.Engine
}

func New(callsign string, recorder *Recorder, corsOrigins []string) *Server {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(callsign))
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{
		callsign: callsign,
		appeared: time.Now(),
		recorder: recorder,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.appeared).String(),
			"service": "hammesh",
		})
	})

	s.router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"callsign":      s.callsign,
			"uptime":        time.Since(s.appeared).String(),
			"packets_heard": s.recorder.Total(),
		})
	})

	s.router.GET("/packets", func(c *gin.Context) {
		entries := s.recorder.Recent()
		c.JSON(http.StatusOK, gin.H{
			"packets": entries,
			"count":   len(entries),
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run serves until the listener fails. Meant to run on its own goroutine;
// the node loop never blocks on the status surface.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
