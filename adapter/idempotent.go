package adapter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GoyacJ/qmt-gateway/models"
)

// Idempotent deduplicates order placements by (account_id, client_req_id).
// A retried placement returns the first successful result instead of filling
// again; concurrent duplicates collapse into one call on the wrapped adapter.
// Failed placements are not remembered, so they can be retried. Each caller
// waits only as long as its own context allows.
type Idempotent struct {
	Adapter

	mu           sync.Mutex
	placed       map[string]models.Order
	group        singleflight.Group
	placeTimeout time.Duration
}

// DefaultPlaceTimeout bounds one placement on the wrapped adapter, independent
// of the deadlines of the callers waiting on it.
const DefaultPlaceTimeout = 30 * time.Second

func NewIdempotent(inner Adapter) *Idempotent {
	return &Idempotent{
		Adapter:      inner,
		placed:       make(map[string]models.Order),
		placeTimeout: DefaultPlaceTimeout,
	}
}

func (a *Idempotent) PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	if req == nil || req.ClientReqID == "" {
		return a.Adapter.PlaceOrder(ctx, req)
	}
	key := req.AccountID + "\x00" + req.ClientReqID

	if o, ok := a.lookup(key); ok {
		return &o, nil
	}

	// The shared call outlives any one caller: a caller that gives up leaves
	// it running, and its outcome is stored for the next retry of the key.
	placeCtx := context.WithoutCancel(ctx)
	placeReq := *req
	ch := a.group.DoChan(key, func() (any, error) {
		if o, ok := a.lookup(key); ok {
			return o, nil
		}
		callCtx, cancel := context.WithTimeout(placeCtx, a.placeTimeout)
		defer cancel()
		o, err := a.Adapter.PlaceOrder(callCtx, &placeReq)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.placed[key] = *o
		a.mu.Unlock()
		return *o, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		o := res.Val.(models.Order)
		return &o, nil
	}
}

func (a *Idempotent) lookup(key string) (models.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	o, ok := a.placed[key]
	return o, ok
}
