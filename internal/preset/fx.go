package preset

import (
	"github.com/smallbiznis/pictora/internal/config"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	"github.com/smallbiznis/pictora/internal/preset/repository"
	"github.com/smallbiznis/pictora/internal/preset/service"
	"go.uber.org/fx"
)

func provideRepository(cfg config.Config) (presetdomain.Repository, error) {
	return repository.Provide(cfg.PresetsPath())
}

var Module = fx.Module("preset.service",
	fx.Provide(provideRepository),
	fx.Provide(service.New),
)
