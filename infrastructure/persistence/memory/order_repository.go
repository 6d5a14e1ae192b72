package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/domain/order"
)

// OrderRepository In-memory implementation of the order repository
// Transition holds the write lock across compare and commit, matching
// the single-statement CAS the MySQL adapter performs.
type OrderRepository struct {
	orders map[string]orderRecord
	mu     sync.RWMutex
}

type orderRecord struct {
	dto   order.ReconstructionDTO
	lines []order.LineReconstructionDTO
}

// NewOrderRepository Create in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]orderRecord),
	}
}

func (r *OrderRepository) snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]orderRecord, len(r.orders))
	for id, rec := range r.orders {
		saved[id] = rec
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.orders = saved
		r.mu.Unlock()
	}
}

func snapshotOrder(o *order.Order) orderRecord {
	lines := o.Lines()
	lineDTOs := make([]order.LineReconstructionDTO, len(lines))
	for i, line := range lines {
		lineDTOs[i] = order.LineReconstructionDTO{
			ID:          line.ID(),
			ProductID:   line.ProductID(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice(),
			Subtotal:    line.Subtotal(),
		}
	}

	return orderRecord{
		dto: order.ReconstructionDTO{
			ID:              o.ID(),
			UserID:          o.UserID(),
			Total:           o.Total(),
			Status:          o.Status(),
			DeliveryAddress: o.DeliveryAddress(),
			Version:         o.Version(),
			CreatedAt:       o.CreatedAt(),
			UpdatedAt:       o.UpdatedAt(),
		},
		lines: lineDTOs,
	}
}

func (rec orderRecord) toDomain() *order.Order {
	lines := make([]order.Line, len(rec.lines))
	for i, lineDTO := range rec.lines {
		lines[i] = order.RebuildLineFromDTO(lineDTO)
	}
	dto := rec.dto
	dto.Lines = lines
	return order.RebuildFromDTO(dto)
}

// Save Save order together with its lines
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID()] = snapshotOrder(o)
	return nil
}

// FindByID Find order by ID with its lines
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}

	return rec.toDomain(), nil
}

// FindByUserID Find order list by user ID, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]orderRecord, 0)
	for _, rec := range r.orders {
		if rec.dto.UserID == userID {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].dto.CreatedAt.After(records[j].dto.CreatedAt)
	})

	orders := make([]*order.Order, len(records))
	for i, rec := range records {
		orders[i] = rec.toDomain()
	}

	return orders, nil
}

// Transition Move the order status from one state to another; the losing
// side of a concurrent transition gets ErrInvalidTransition
func (r *OrderRepository) Transition(ctx context.Context, orderID string, from, to order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.orders[orderID]
	if !ok {
		return order.NewOrderNotFoundError(orderID)
	}
	if rec.dto.Status != from {
		return order.NewInvalidTransitionError(string(rec.dto.Status), string(to))
	}

	rec.dto.Status = to
	rec.dto.Version++
	rec.dto.UpdatedAt = time.Now()
	r.orders[orderID] = rec

	return nil
}

// HasCompletedPurchase Report whether any line for the product exists in
// a COMPLETED order owned by the user
func (r *OrderRepository) HasCompletedPurchase(ctx context.Context, userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.orders {
		if rec.dto.UserID != userID || rec.dto.Status != order.StatusCompleted {
			continue
		}
		for _, line := range rec.lines {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}

	return false, nil
}

// CompletedQuantity Sum the quantity of a product across all COMPLETED orders
func (r *OrderRepository) CompletedQuantity(ctx context.Context, productID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sold int64
	for _, rec := range r.orders {
		if rec.dto.Status != order.StatusCompleted {
			continue
		}
		for _, line := range rec.lines {
			if line.ProductID == productID {
				sold += int64(line.Quantity)
			}
		}
	}

	return sold, nil
}

var _ order.Repository = (*OrderRepository)(nil)
