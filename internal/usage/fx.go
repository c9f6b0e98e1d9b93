package usage

import (
	"github.com/smallbiznis/pictora/internal/config"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"github.com/smallbiznis/pictora/internal/usage/repository"
	"github.com/smallbiznis/pictora/internal/usage/service"
	"go.uber.org/fx"
)

func provideRepository(cfg config.Config) (usagedomain.Repository, error) {
	return repository.Provide(cfg.UsagePath())
}

var Module = fx.Module("usage.service",
	fx.Provide(provideRepository),
	fx.Provide(service.New),
)
