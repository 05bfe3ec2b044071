package webserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stake-plus/spycat-agency/src/api/agency"
	"github.com/stake-plus/spycat-agency/src/api/config"
	"github.com/stake-plus/spycat-agency/src/api/metrics"
)

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Config  config.Config
	Service *agency.Service
	Log     zerolog.Logger
	// Metrics and Gatherer are optional; /metrics is served only when both
	// are set and metrics are enabled.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Checks are run by /healthz, keyed by component name.
	Checks map[string]func(context.Context) error
}

// New builds the gin engine. Background work started for the engine (rate
// limiter janitor) stops when ctx is done.
func New(ctx context.Context, d Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery(), RequestID(), AccessLog(d.Log, d.Metrics))
	attachRoutes(ctx, g, d)
	return g
}
