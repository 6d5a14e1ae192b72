/*
Package order - order subdomain, the core of the checkout engine.

The Order aggregate is the immutable record a checkout produces from a
mutable cart. Its invariants:
- an order always has at least one line;
- every line captures the unit price charged at checkout time; the
  catalog price may move afterwards without touching the order;
- the total equals the sum of line subtotals, computed once at creation
  and never recomputed;
- status only moves along PENDING -> COMPLETED | CANCELLED, both
  terminal.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Status is the closed order-state enum.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no further transition is legal.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order aggregate root. Lines are part of the aggregate and immutable
// after creation; they are only reachable through the Order.
type Order struct {
	id              string
	userID          string
	lines           []Line
	total           shared.Money
	status          Status
	deliveryAddress string
	version         int // optimistic lock, managed by the repository
	createdAt       time.Time
	updatedAt       time.Time

	events []shared.DomainEvent
}

// Line is the immutable historical record of one product within a
// placed order: quantity and the unit price captured at checkout.
type Line struct {
	id          string
	productID   string
	productName string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// NewOrder creates a PENDING order from the pricing calculator's output.
// This is the only way an order comes into existence; the line set and
// total are fixed here and never change. The given total must equal the
// sum of the line subtotals.
func NewOrder(userID, deliveryAddress string, priced []PricedLine, total shared.Money) (*Order, error) {
	if userID == "" {
		return nil, NewValidationError("user_id", "order must have an owner")
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, NewValidationError("delivery_address", "delivery address must not be empty")
	}
	if len(priced) == 0 {
		return nil, NewEmptyOrderError()
	}

	lines := make([]Line, len(priced))
	sum := shared.NewMoney(0, total.Currency())
	for i, p := range priced {
		if p.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order line ID: %w", err)
		}

		lines[i] = Line{
			id:          id.String(),
			productID:   p.ProductID,
			productName: p.ProductName,
			quantity:    p.Quantity,
			unitPrice:   p.UnitPrice,
			subtotal:    p.Subtotal,
		}

		sum, err = sum.Add(p.Subtotal)
		if err != nil {
			return nil, err
		}
	}

	if !total.IsPositive() {
		return nil, ErrTotalNotPositive
	}
	if !sum.Equals(total) {
		return nil, ErrTotalMismatch
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              orderID.String(),
		userID:          userID,
		lines:           lines,
		total:           total,
		status:          StatusPending,
		deliveryAddress: deliveryAddress,
		version:         0,
		createdAt:       now,
		updatedAt:       now,
	}
	o.events = append(o.events, NewPlacedEvent(o.id, userID, o.total))

	return o, nil
}

// Cancel moves the order to CANCELLED. Customer-initiated; legal only
// from PENDING.
func (o *Order) Cancel() error {
	if o.status != StatusPending {
		return NewInvalidTransitionError(string(o.status), string(StatusCancelled))
	}
	o.status = StatusCancelled
	o.updatedAt = time.Now()
	o.events = append(o.events, NewCancelledEvent(o.id, o.userID))
	return nil
}

// Complete moves the order to COMPLETED. Administrative transition;
// legal only from PENDING. A completed order is what makes its products
// reviewable by the owner.
func (o *Order) Complete() error {
	if o.status != StatusPending {
		return NewInvalidTransitionError(string(o.status), string(StatusCompleted))
	}
	o.status = StatusCompleted
	o.updatedAt = time.Now()
	o.events = append(o.events, NewCompletedEvent(o.id, o.userID))
	return nil
}

func (o *Order) ID() string              { return o.id }
func (o *Order) UserID() string          { return o.userID }
func (o *Order) Total() shared.Money     { return o.total }
func (o *Order) Status() Status          { return o.status }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) Version() int            { return o.version }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// OwnedBy reports whether the order belongs to the given user.
func (o *Order) OwnedBy(userID string) bool {
	return o.userID == userID
}

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (l Line) ID() string              { return l.id }
func (l Line) ProductID() string       { return l.productID }
func (l Line) ProductName() string     { return l.productName }
func (l Line) Quantity() int           { return l.quantity }
func (l Line) UnitPrice() shared.Money { return l.unitPrice }
func (l Line) Subtotal() shared.Money  { return l.subtotal }

// ReconstructionDTO rebuilds an Order from storage.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID              string
	UserID          string
	Lines           []Line
	Total           shared.Money
	Status          Status
	DeliveryAddress string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromDTO reconstructs an Order aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:              dto.ID,
		userID:          dto.UserID,
		lines:           dto.Lines,
		total:           dto.Total,
		status:          dto.Status,
		deliveryAddress: dto.DeliveryAddress,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
	}
}

// LineReconstructionDTO rebuilds an order line from storage.
type LineReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildLineFromDTO reconstructs an order line from a DTO.
func RebuildLineFromDTO(dto LineReconstructionDTO) Line {
	return Line{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}

// Compile-time check that Order implements AggregateRoot.
var _ shared.AggregateRoot = (*Order)(nil)
