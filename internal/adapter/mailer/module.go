package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/amvenit/amvenit/internal/config"
)

// Module exposes mail client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MailBaseURL, p.Config.MailAPIKey, p.Config.MailFrom, p.Logger)
}
