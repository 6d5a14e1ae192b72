package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/domain/cart"
)

// CartRepository In-memory implementation of the cart-line repository
// AddOrMerge holds the write lock across lookup and insert, matching the
// atomicity the unique (user, product) index provides in MySQL.
type CartRepository struct {
	lines map[string]cart.ReconstructionDTO
	mu    sync.RWMutex
}

// NewCartRepository Create in-memory cart repository
func NewCartRepository() *CartRepository {
	return &CartRepository{
		lines: make(map[string]cart.ReconstructionDTO),
	}
}

func (r *CartRepository) snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]cart.ReconstructionDTO, len(r.lines))
	for id, dto := range r.lines {
		saved[id] = dto
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.lines = saved
		r.mu.Unlock()
	}
}

func snapshotLine(l *cart.Line) cart.ReconstructionDTO {
	return cart.ReconstructionDTO{
		ID:        l.ID(),
		UserID:    l.UserID(),
		ProductID: l.ProductID(),
		Quantity:  l.Quantity(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

// AddOrMerge Insert the line, or add its quantity onto the existing line
// for the same (user, product) pair
func (r *CartRepository) AddOrMerge(ctx context.Context, line *cart.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, dto := range r.lines {
		if dto.UserID == line.UserID() && dto.ProductID == line.ProductID() {
			dto.Quantity += line.Quantity()
			dto.UpdatedAt = time.Now()
			r.lines[id] = dto
			return nil
		}
	}

	r.lines[line.ID()] = snapshotLine(line)
	return nil
}

// Save Update an existing line
func (r *CartRepository) Save(ctx context.Context, line *cart.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[line.ID()] = snapshotLine(line)
	return nil
}

// FindByID Find line by ID
func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.lines[id]
	if !ok {
		return nil, cart.NewLineNotFoundError(id)
	}

	return cart.RebuildFromDTO(dto), nil
}

// FindByUserID Find the user's lines ordered by creation time
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) ([]*cart.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]cart.ReconstructionDTO, 0)
	for _, dto := range r.lines {
		if dto.UserID == userID {
			dtos = append(dtos, dto)
		}
	}

	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].CreatedAt.Before(dtos[j].CreatedAt)
	})

	lines := make([]*cart.Line, len(dtos))
	for i, dto := range dtos {
		lines[i] = cart.RebuildFromDTO(dto)
	}

	return lines, nil
}

// Remove Delete one line
func (r *CartRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lines[id]; !ok {
		return cart.NewLineNotFoundError(id)
	}
	delete(r.lines, id)

	return nil
}

// RemoveByIDs Delete exactly the given lines of one user and report how
// many actually went away
func (r *CartRepository) RemoveByIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for _, id := range ids {
		dto, ok := r.lines[id]
		if !ok || dto.UserID != userID {
			continue
		}
		delete(r.lines, id)
		removed++
	}

	return removed, nil
}

var _ cart.Repository = (*CartRepository)(nil)
