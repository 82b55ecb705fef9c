package adapter

import "github.com/pkg/errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrNotSupported  = errors.New("not supported")

	// ErrAdapterUnavailable is returned at construction time for a backend
	// that cannot be built in this process.
	ErrAdapterUnavailable = errors.New("adapter unavailable")
	ErrUnknownMode        = errors.New("unknown gateway mode")
)
