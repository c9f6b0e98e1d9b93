// Package seed installs the default preset catalog on first run.
package seed

import (
	"context"
	"errors"

	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EnsureDefaultPresets inserts the educational starter catalog when the
// preset collection is empty. Duplicates are skipped silently, matching the
// catalog's idempotent contract; seeding a non-empty store does nothing.
func EnsureDefaultPresets(ctx context.Context, svc presetdomain.Service, log *zap.Logger) error {
	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seeded := 0
	for _, req := range DefaultPresets() {
		if _, err := svc.Create(ctx, req); err != nil {
			if errors.Is(err, presetdomain.ErrDuplicateName) {
				continue
			}
			return err
		}
		seeded++
	}

	log.Info("seeded default presets", zap.Int("count", seeded))
	return nil
}

// DefaultPresets is the starter catalog, one preset per educational
// use-case category.
func DefaultPresets() []presetdomain.CreateRequest {
	return []presetdomain.CreateRequest{
		{
			Name:     "Morning Routine Item",
			Category: "Visual Schedule",
			Model:    "dall-e-3",
			Prompt:   "Simple, clear icon-style illustration of [ITEM] on white background, friendly style, suitable for visual schedule, minimal details, bright colors",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    `Replace [ITEM] with specific activity like "brushing teeth", "eating breakfast", etc.`,
		},
		{
			Name:     "Transition Activity",
			Category: "Visual Schedule",
			Model:    "dall-e-3",
			Prompt:   "Clean, simple illustration showing [ACTIVITY] for classroom transition, clear and easy to understand, suitable for children, minimal background",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    `For activities like "line up", "sit down", "clean up"`,
		},
		{
			Name:     "Emotion Face - Basic",
			Category: "Emotion Cards",
			Model:    "dall-e-3",
			Prompt:   "Simple, friendly cartoon face showing [EMOTION], clear facial expression, suitable for teaching emotions to children, clean white background, gentle style",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    "Replace [EMOTION] with: happy, sad, angry, scared, surprised, etc.",
		},
		{
			Name:     "Social Story Character",
			Category: "Social Stories",
			Model:    "dall-e-3",
			Prompt:   "Friendly, simple cartoon character [DOING ACTION], suitable for social story, clear and encouraging, minimal background, appropriate for children",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    "For sequential social stories. Keep character style consistent.",
		},
		{
			Name:     "Learning Concept",
			Category: "Educational",
			Model:    "dall-e-3",
			Prompt:   "Clear, simple educational illustration showing [CONCEPT], easy to understand, suitable for children, uncluttered, bright and engaging",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    "For teaching concepts like colors, shapes, numbers, letters",
		},
		{
			Name:     "Choice Board Item",
			Category: "Choice Boards",
			Model:    "dall-e-3",
			Prompt:   "Simple, clear illustration of [CHOICE] for choice board, icon style, easy to identify, suitable for classroom, white background",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "natural",
			Notes:    "For choice boards showing activity options",
		},
	}
}

func runSeed(lc fx.Lifecycle, svc presetdomain.Service, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return EnsureDefaultPresets(ctx, svc, log.Named("seed"))
		},
	})
}

// Module seeds the default catalog during startup.
var Module = fx.Module("seed",
	fx.Invoke(runSeed),
)
