package repository

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/GoyacJ/qmt-gateway/models"
)

var ErrDuplicateOrder = errors.New("duplicate order id")

// OrderRepository is the in-memory order registry owned by one adapter.
// Records are stored by value; callers only ever receive copies.
type OrderRepository struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]models.Order)}
}

// CreateOrder inserts a new order keyed by its id.
func (r *OrderRepository) CreateOrder(order models.Order) error {
	if order.OrderID == "" {
		return errors.New("order id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; exists {
		return errors.Wrap(ErrDuplicateOrder, order.OrderID)
	}
	r.orders[order.OrderID] = order
	return nil
}

// GetOrderByID fetches one order by id.
func (r *OrderRepository) GetOrderByID(id string) (models.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	return o, ok
}

// CancelOrder moves the order to CANCELED. Lookup and transition happen under
// one lock so racing cancels and place/cancel interleavings lose no update.
// It reports false when the id is unknown.
func (r *OrderRepository) CancelOrder(id string) (models.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, false
	}
	o.Status = models.OrderStatusCanceled
	r.orders[id] = o
	return o, true
}

// ListOrders returns every order, oldest first.
func (r *OrderRepository) ListOrders() []models.Order {
	r.mu.Lock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].OrderID < out[j].OrderID
	})
	return out
}

func (r *OrderRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}
