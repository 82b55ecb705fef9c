package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoyacJ/qmt-gateway/models"
)

var _ Adapter = (*Idempotent)(nil)

// countingAdapter fails the first failN placements, then delegates.
type countingAdapter struct {
	*MockAdapter

	mu    sync.Mutex
	calls int
	failN int
}

func (c *countingAdapter) PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	c.mu.Lock()
	c.calls++
	fail := c.calls <= c.failN
	c.mu.Unlock()
	if fail {
		return nil, errors.New("broker timeout")
	}
	return c.MockAdapter.PlaceOrder(ctx, req)
}

func (c *countingAdapter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestIdempotentReturnsFirstResult(t *testing.T) {
	mock := NewMockAdapter()
	a := NewIdempotent(mock)
	req := buyRequest(100)

	first, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	second, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Len(t, mock.Orders(), 1)
}

func TestIdempotentKeyIncludesAccount(t *testing.T) {
	mock := NewMockAdapter()
	a := NewIdempotent(mock)

	req := buyRequest(100)
	other := *req
	other.AccountID = "acct-2"

	first, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	second, err := a.PlaceOrder(context.Background(), &other)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Len(t, mock.Orders(), 2)
}

func TestIdempotentDoesNotCacheFailures(t *testing.T) {
	inner := &countingAdapter{MockAdapter: NewMockAdapter(), failN: 1}
	a := NewIdempotent(inner)
	req := buyRequest(100)

	_, err := a.PlaceOrder(context.Background(), req)
	require.Error(t, err)

	order, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFilled, order.Status)
	assert.Equal(t, 2, inner.callCount())
}

func TestIdempotentCollapsesConcurrentDuplicates(t *testing.T) {
	inner := &countingAdapter{MockAdapter: NewMockAdapter()}
	a := NewIdempotent(inner)
	req := buyRequest(100)

	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := a.PlaceOrder(context.Background(), req)
			if assert.NoError(t, err) {
				ids[i] = o.OrderID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, inner.callCount())
	assert.Len(t, inner.Orders(), 1)
}

func TestIdempotentWithoutClientRequestIDDelegates(t *testing.T) {
	mock := NewMockAdapter()
	a := NewIdempotent(mock)
	req := buyRequest(1)
	req.ClientReqID = ""

	_, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	_, err = a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, mock.Orders(), 2)
}

func TestIdempotentDelegatesReadsAndCancel(t *testing.T) {
	mock := NewMockAdapter()
	a := NewIdempotent(mock)
	ctx := context.Background()

	syms, err := a.GetSymbols(ctx, models.SymbolScopeSector, "liquor")
	require.NoError(t, err)
	assert.Equal(t, []string{"600519.SH", "000858.SZ"}, syms)

	order, err := a.PlaceOrder(ctx, buyRequest(5))
	require.NoError(t, err)
	res, err := a.CancelOrder(ctx, &models.CancelOrderRequest{AccountID: "acct-1", OrderID: order.OrderID})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCanceled, res.Status)
}

// blockingAdapter holds every placement until release is closed.
type blockingAdapter struct {
	*MockAdapter

	started chan struct{}
	release chan struct{}
	once    sync.Once

	mu    sync.Mutex
	calls int
}

func newBlockingAdapter() *blockingAdapter {
	return &blockingAdapter{
		MockAdapter: NewMockAdapter(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (b *blockingAdapter) PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.MockAdapter.PlaceOrder(ctx, req)
}

func (b *blockingAdapter) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestIdempotentCanceledCallerDoesNotFailOthers(t *testing.T) {
	inner := newBlockingAdapter()
	a := NewIdempotent(inner)
	req := buyRequest(100)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := a.PlaceOrder(ctxA, req)
		errA <- err
	}()
	<-inner.started

	type result struct {
		order *models.Order
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		o, err := a.PlaceOrder(context.Background(), req)
		resB <- result{o, err}
	}()

	cancelA()
	select {
	case err := <-errA:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("canceled caller stayed blocked on the shared placement")
	}

	close(inner.release)
	var b result
	select {
	case b = <-resB:
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
	require.NoError(t, b.err)
	assert.Equal(t, models.OrderStatusFilled, b.order.Status)

	retried, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, b.order.OrderID, retried.OrderID)
	assert.Equal(t, 1, inner.callCount())
	assert.Len(t, inner.Orders(), 1)
}

func TestIdempotentCallerDeadlineWhileShared(t *testing.T) {
	inner := newBlockingAdapter()
	a := NewIdempotent(inner)
	req := buyRequest(10)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.PlaceOrder(context.Background(), req)
	}()
	<-inner.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := a.PlaceOrder(ctx, req)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	close(inner.release)
	<-done
	o, err := a.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFilled, o.Status)
	assert.Equal(t, 1, inner.callCount())
}
