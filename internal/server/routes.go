package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	slogGin "github.com/samber/slog-gin"

	"github.com/ozenlabs/ozenembed/internal/server/api"
	"github.com/ozenlabs/ozenembed/internal/utils"
	"github.com/ozenlabs/ozenembed/internal/version"
)

func SetupRoutes(static *StaticHandler, hub *ReloadHub) http.Handler {
	r := gin.New()

	httpLogger := slog.Default().WithGroup("http")
	r.Use(slogGin.NewWithConfig(httpLogger, slogGin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	}))
	r.Use(gin.Recovery())
	// audio payloads are already compressed, gzipping them wastes cycles
	r.Use(gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedExtensions(utils.AudioExtensions())))
	r.Use(cors.Default())

	r.GET("/healthz", HealthHandler)

	if hub != nil {
		r.GET(ReloadEndpoint, hub.Handler)
	}

	// everything else resolves against the doc root
	r.NoRoute(static.Handler)

	r.NoMethod(func(c *gin.Context) {
		api.AbortWithError(c, http.StatusMethodNotAllowed, api.CodeMethodNotAllowed, errors.New("method not allowed"))
	})

	return r.Handler()
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
