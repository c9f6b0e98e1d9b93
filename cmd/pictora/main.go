package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	"github.com/smallbiznis/pictora/internal/config"
	"github.com/smallbiznis/pictora/internal/gallery"
	"github.com/smallbiznis/pictora/internal/imageapi"
	"github.com/smallbiznis/pictora/internal/logger"
	"github.com/smallbiznis/pictora/internal/preset"
	"github.com/smallbiznis/pictora/internal/pricing"
	"github.com/smallbiznis/pictora/internal/seed"
	"github.com/smallbiznis/pictora/internal/server"
	"github.com/smallbiznis/pictora/internal/usage"
	"go.uber.org/fx"
)

func newIDNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	fx.New(
		fx.Provide(newIDNode),
		config.Module,
		logger.Module,
		clock.Module,
		pricing.Module,
		preset.Module,
		usage.Module,
		seed.Module,
		imageapi.Module,
		gallery.Module,
		server.Module,
	).Run()
}
