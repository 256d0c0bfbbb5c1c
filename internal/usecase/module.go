package usecase

import (
	"go.uber.org/fx"

	pkgAuth "github.com/amvenit/amvenit/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(func() CodeGenerator { return pkgAuth.GeneratePIN }),
	fx.Provide(
		NewAuthUseCase,
		NewOrderUseCase,
		NewCourierUseCase,
	),
)
