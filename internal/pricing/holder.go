package pricing

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/pictora/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Holder serves the current rate tables and hot-reloads them from an
// optional pricing.yml in the data directory. Without an override file the
// compiled-in defaults apply.
type Holder struct {
	current atomic.Value // holds Tables
	log     *zap.Logger
}

// NewHolder loads pricing.yml when present and keeps watching it for
// changes. Invalid reloads are logged and ignored so a bad edit never takes
// down pricing.
func NewHolder(cfg config.Config, log *zap.Logger) (*Holder, error) {
	h := &Holder{log: log.Named("pricing")}
	h.current.Store(Default())

	v := viper.New()
	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath(cfg.DataDir)

	v.SetEnvPrefix("PICTORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return h, nil
	}

	tables, err := decodeTables(v)
	if err != nil {
		return nil, err
	}
	h.current.Store(tables)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeTables(v)
		if err != nil {
			h.log.Warn("pricing reload ignored", zap.String("file", filepath.Base(e.Name)), zap.Error(err))
			return
		}
		h.current.Store(updated)
		h.log.Info("pricing reloaded", zap.String("file", filepath.Base(e.Name)))
	})

	return h, nil
}

// Current returns the active rate tables.
func (h *Holder) Current() Tables {
	return h.current.Load().(Tables)
}

// Calculate prices a request against the active tables.
func (h *Holder) Calculate(model, size, quality string, n int) float64 {
	return h.Current().Calculate(model, size, quality, n)
}

// ForModel exposes the active table for one model.
func (h *Holder) ForModel(model string) map[string]any {
	return h.Current().ForModel(model)
}

func decodeTables(v *viper.Viper) (Tables, error) {
	tables := Default()
	if err := v.UnmarshalKey("pricing", &tables); err != nil {
		return Tables{}, err
	}
	if err := validateTables(tables); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

func validateTables(t Tables) error {
	if len(t.GPTImage1) == 0 || t.GPTImage1[QualityHigh] <= 0 {
		return errors.New("pricing.gpt_image_1 must include a positive high tier")
	}
	if t.DallE3[baselineSize][QualityStandard] <= 0 {
		return errors.New("pricing.dall_e_3 must include the 1024x1024 standard entry")
	}
	if t.DallE2[baselineSize] <= 0 {
		return errors.New("pricing.dall_e_2 must include the 1024x1024 entry")
	}
	if t.UnknownModelUnit <= 0 {
		return errors.New("pricing.unknown_model_unit must be positive")
	}
	return nil
}
