package imageapi

import "go.uber.org/fx"

// Module wires the OpenAI-backed image client.
var Module = fx.Module("imageapi",
	fx.Provide(NewOpenAI),
)
