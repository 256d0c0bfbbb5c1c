package di

import (
	"go.uber.org/fx"

	"github.com/amvenit/amvenit/internal/adapter/mailer"
	"github.com/amvenit/amvenit/internal/app"
	"github.com/amvenit/amvenit/internal/config"
	"github.com/amvenit/amvenit/internal/logger"
	"github.com/amvenit/amvenit/internal/pkg/auth"
	"github.com/amvenit/amvenit/internal/server/http/router"
	"github.com/amvenit/amvenit/internal/storage/postgres"
	"github.com/amvenit/amvenit/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
