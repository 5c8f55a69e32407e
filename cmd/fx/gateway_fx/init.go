package gateway_fx

import (
	"go.uber.org/fx"

	"github.com/bizmatters/healthpath/internal/gateway"
)

var Module = fx.Provide(
	gateway.NewHandler,
	gateway.NewRouter)
