package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ai-outfit-assistant/internal/metrics"
	stylistHTTP "ai-outfit-assistant/internal/stylist/delivery/http"
	"ai-outfit-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	metrics        *metrics.Metrics
	stylistHandler stylistHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Metrics        *metrics.Metrics
	StylistHandler stylistHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		metrics:        cfg.Metrics,
		stylistHandler: cfg.StylistHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.stylistHandler == nil {
		return errors.New("stylist handler is required")
	}
	return nil
}
