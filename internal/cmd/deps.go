package cmd

import (
	"context"
	"net/http"

	"github.com/cb-innovatekare/hokage/internal/api"
	"github.com/cb-innovatekare/hokage/internal/config"
	"github.com/cb-innovatekare/hokage/internal/dashboard"
	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/realtime"
	"github.com/cb-innovatekare/hokage/internal/tui/msg"
)

// deps is everything a command needs, built from the loaded configuration.
type deps struct {
	cfg    *config.Config
	logger *logging.Logger
	ctrl   *dashboard.Controller
}

func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, herrors.Wrap(err, "invalid configuration")
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.LogDir(), cfg.Logging.Level)
		if err != nil {
			return nil, herrors.Wrap(err, "failed to open log")
		}
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithToken(cfg.API.Token),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	ctrl := dashboard.New(client,
		dashboard.WithSectors(cfg.Dashboard.Sectors),
		dashboard.WithDomainOpenLead(cfg.Dashboard.DomainOpenLead),
		dashboard.WithLogger(logger),
	)
	return &deps{cfg: cfg, logger: logger, ctrl: ctrl}, nil
}

// dialer opens the realtime channel described by the configuration.
func (d *deps) dialer() msg.Dialer {
	return func(ctx context.Context) (dashboard.Broadcaster, error) {
		conn, err := realtime.Dial(ctx, d.cfg.RealtimeURL(),
			realtime.WithNamespace(d.cfg.Realtime.Namespace),
			realtime.WithDialTimeout(d.cfg.Realtime.DialTimeout),
			realtime.WithHeader(d.upgradeHeader()),
			realtime.WithLogger(d.logger),
		)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// upgradeHeader carries the API token to the realtime server, which sits
// behind the same gateway as the event API.
func (d *deps) upgradeHeader() http.Header {
	h := http.Header{}
	if d.cfg.API.Token != "" {
		h.Set("Authorization", "Bearer "+d.cfg.API.Token)
	}
	return h
}

// load fetches the roster and catalog. A team failure is fatal for the
// scriptable commands; a catalog failure is not.
func (d *deps) load(ctx context.Context) (dashboard.LoadResult, error) {
	res, err := d.ctrl.Load(ctx)
	if err != nil {
		return res, err
	}
	if res.TeamsErr != nil {
		return res, herrors.Wrap(res.TeamsErr, "failed to load teams")
	}
	return res, nil
}

func (d *deps) close() {
	_ = d.ctrl.Close()
	_ = d.logger.Close()
}
