package adapter

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/config"
)

type constructor func(cfg config.Config, logger *zap.Logger) (Adapter, error)

var constructors = map[string]constructor{
	config.ModeMock: func(cfg config.Config, logger *zap.Logger) (Adapter, error) {
		return NewMockAdapter(WithLogger(logger.Named(MockName))), nil
	},
	// The XtQuant terminal API only exists on the broker's Windows client.
	config.ModeXtQuant: func(cfg config.Config, logger *zap.Logger) (Adapter, error) {
		return nil, errors.Wrap(ErrAdapterUnavailable, "xtquant live backend is not implemented")
	},
}

// New builds the single adapter for this process. It never falls back to the
// mock: a mode that cannot be constructed is an error the caller must treat as
// fatal.
func New(cfg config.Config, logger *zap.Logger) (Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mode := cfg.Mode
	if mode == "" {
		mode = config.ModeMock
	}

	build, ok := constructors[mode]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMode, "%q (known: %v)", mode, Modes())
	}
	a, err := build(cfg, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s adapter", mode)
	}

	if cfg.IdempotentOrders {
		a = NewIdempotent(a)
	}
	logger.Info("execution adapter ready",
		zap.String("mode", mode),
		zap.String("adapter", a.Name()),
		zap.Bool("idempotent_orders", cfg.IdempotentOrders))
	return a, nil
}

// Modes lists the recognized gateway modes.
func Modes() []string {
	out := make([]string, 0, len(constructors))
	for m := range constructors {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
