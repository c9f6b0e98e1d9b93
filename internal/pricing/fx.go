package pricing

import "go.uber.org/fx"

// Module wires the pricing holder.
var Module = fx.Module("pricing",
	fx.Provide(NewHolder),
)
