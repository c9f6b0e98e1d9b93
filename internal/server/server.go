// Package server exposes the HTTP API over gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/pictora/internal/config"
	"github.com/smallbiznis/pictora/internal/gallery"
	"github.com/smallbiznis/pictora/internal/imageapi"
	"github.com/smallbiznis/pictora/internal/pricing"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Presets presetdomain.Service
	Usage   usagedomain.Service
	Pricing *pricing.Holder
	Images  imageapi.Client
	Gallery *gallery.Store
	Metrics *Metrics
}

type Server struct {
	cfg     config.Config
	log     *zap.Logger
	presets presetdomain.Service
	usage   usagedomain.Service
	pricing *pricing.Holder
	images  imageapi.Client
	gallery *gallery.Store
	metrics *Metrics
}

func New(p Params) *Server {
	return &Server{
		cfg:     p.Cfg,
		log:     p.Log.Named("server"),
		presets: p.Presets,
		usage:   p.Usage,
		pricing: p.Pricing,
		images:  p.Images,
		gallery: p.Gallery,
		metrics: p.Metrics,
	}
}

func NewEngine(s *Server, log *zap.Logger, m *Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(MetricsMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"service":     s.cfg.AppName,
			"version":     s.cfg.AppVersion,
			"environment": s.cfg.Environment,
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.Static("/images", s.gallery.Dir())

	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	presets := api.Group("/presets")
	presets.GET("", s.ListPresets)
	presets.GET("/categories", s.ListPresetCategories)
	presets.GET("/category/:category", s.ListPresetsByCategory)
	presets.POST("", s.CreatePreset)
	presets.PUT("/:id", s.UpdatePreset)
	presets.DELETE("/:id", s.DeletePreset)
	presets.POST("/:id/use", s.UsePreset)

	usage := api.Group("/usage")
	usage.GET("/stats", s.UsageStats)
	usage.GET("/session", s.SessionStats)
	usage.GET("/models", s.UsageByModel)
	usage.GET("/recent", s.RecentUsage)
	usage.GET("/export", s.ExportUsage)

	api.GET("/pricing/:model", s.PricingForModel)

	api.POST("/generate", s.Generate)
	api.POST("/generate/estimate", s.EstimateCost)
	api.POST("/edit", s.EditImage)

	api.GET("/images", s.ListImages)
	api.DELETE("/images/:filename", s.DeleteImage)
}

func run(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(
		NewMetrics,
		New,
		NewEngine,
	),
	fx.Invoke(run),
)
