/*
Package category - catalog category subdomain.

Categories are an admin-managed taxonomy over the product catalog.
Products carry the category name as a denormalized tag, so checkout and
listing never need a join; the admin surface here keeps the taxonomy
itself consistent.
*/
package category

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category catalog taxonomy entity.
type Category struct {
	id          string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a category. The name must be non-blank; the
// description is optional.
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCategoryName
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	now := time.Now()
	return &Category{
		id:          id.String(),
		name:        strings.TrimSpace(name),
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Rename changes the display name. Products keep the name they were
// tagged with; retagging is a separate catalog operation.
func (c *Category) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidCategoryName
	}
	c.name = strings.TrimSpace(name)
	c.updatedAt = time.Now()
	return nil
}

// Redescribe replaces the description.
func (c *Category) Redescribe(description string) {
	c.description = description
	c.updatedAt = time.Now()
}

func (c *Category) ID() string           { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// ReconstructionDTO rebuilds a Category from storage.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs a Category entity from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Category {
	return &Category{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}
