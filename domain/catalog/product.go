/*
Package catalog - product subdomain.

The catalog is a collaborator of the checkout core: checkout treats a
product's price and availability as a point-in-time read, never a live
reference. Products themselves are simple entities managed by admins.
*/
package catalog

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Availability is the closed set of catalog states a product can be in.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// Product catalog entity.
// Price mutations go through Reprice so the positive-price rule holds
// everywhere; checkout reads price/availability as a snapshot.
type Product struct {
	id        string
	name      string
	price     shared.Money
	category  string
	status    Availability
	createdAt time.Time
	updatedAt time.Time
}

// NewProduct creates a product in the Available state.
func NewProduct(name, category string, price shared.Money) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProductName
	}
	if !price.IsPositive() {
		return nil, ErrInvalidProductPrice
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:        id.String(),
		name:      name,
		price:     price,
		category:  category,
		status:    Available,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rename changes the display name.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProductName
	}
	p.name = name
	p.updatedAt = time.Now()
	return nil
}

// Reprice changes the current catalog price. Orders already placed keep
// their captured unit prices and are not affected.
func (p *Product) Reprice(price shared.Money) error {
	if !price.IsPositive() {
		return ErrInvalidProductPrice
	}
	p.price = price
	p.updatedAt = time.Now()
	return nil
}

// Recategorize moves the product to another category.
func (p *Product) Recategorize(category string) {
	p.category = category
	p.updatedAt = time.Now()
}

// MarkAvailable puts the product back on sale.
func (p *Product) MarkAvailable() {
	p.status = Available
	p.updatedAt = time.Now()
}

// MarkUnavailable takes the product off sale. Existing cart lines keep
// referencing it; checkout rejects them with a product-unavailable error.
func (p *Product) MarkUnavailable() {
	p.status = Unavailable
	p.updatedAt = time.Now()
}

func (p *Product) ID() string            { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) Price() shared.Money   { return p.price }
func (p *Product) Category() string      { return p.category }
func (p *Product) Status() Availability  { return p.status }
func (p *Product) IsAvailable() bool     { return p.status == Available }
func (p *Product) CreatedAt() time.Time  { return p.createdAt }
func (p *Product) UpdatedAt() time.Time  { return p.updatedAt }

// ReconstructionDTO rebuilds a Product from storage.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID        string
	Name      string
	Price     shared.Money
	Category  string
	Status    Availability
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs a Product entity from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:        dto.ID,
		name:      dto.Name,
		price:     dto.Price,
		category:  dto.Category,
		status:    dto.Status,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}
