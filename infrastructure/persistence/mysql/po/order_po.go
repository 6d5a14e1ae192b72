package po

import (
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID              string    `gorm:"primaryKey;size:64"`
	UserID          string    `gorm:"size:64;index;not null"` // Only store ID, no association with users
	Status          string    `gorm:"size:20;index;not null"`
	TotalAmount     int64     `gorm:"not null"`
	TotalCurrency   string    `gorm:"size:3;not null"`
	DeliveryAddress string    `gorm:"size:500;not null"`
	Version         int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderLinePO Order line persistence object
type OrderLinePO struct {
	ID               string `gorm:"primaryKey;size:128"`
	OrderID          string `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	ProductID        string `gorm:"size:64;index;not null"`
	ProductName      string `gorm:"size:255;not null"`
	Quantity         int    `gorm:"not null"`
	UnitPrice        int64  `gorm:"not null"`
	UnitCurrency     string `gorm:"size:3;not null"`
	Subtotal         int64  `gorm:"not null"`
	SubtotalCurrency string `gorm:"size:3;not null"`
}

// TableName Specify table name
func (OrderLinePO) TableName() string {
	return "order_lines"
}

// FromOrderDomain Convert domain model to persistence object
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderLinePO) {
	orderPO := &OrderPO{
		ID:              o.ID(),
		UserID:          o.UserID(),
		Status:          string(o.Status()),
		TotalAmount:     o.Total().Amount(),
		TotalCurrency:   o.Total().Currency(),
		DeliveryAddress: o.DeliveryAddress(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	lines := o.Lines()
	linePOs := make([]OrderLinePO, len(lines))
	for i, line := range lines {
		linePOs[i] = OrderLinePO{
			ID:               line.ID(), // Use domain object's ID for consistency
			OrderID:          o.ID(),
			ProductID:        line.ProductID(),
			ProductName:      line.ProductName(),
			Quantity:         line.Quantity(),
			UnitPrice:        line.UnitPrice().Amount(),
			UnitCurrency:     line.UnitPrice().Currency(),
			Subtotal:         line.Subtotal().Amount(),
			SubtotalCurrency: line.Subtotal().Currency(),
		}
	}

	return orderPO, linePOs
}

// ToDomain Convert persistence object to domain model
func (po *OrderPO) ToDomain(linePOs []OrderLinePO) *order.Order {
	lines := make([]order.Line, len(linePOs))
	for i, linePO := range linePOs {
		lines[i] = order.RebuildLineFromDTO(order.LineReconstructionDTO{
			ID:          linePO.ID,
			ProductID:   linePO.ProductID,
			ProductName: linePO.ProductName,
			Quantity:    linePO.Quantity,
			UnitPrice:   *shared.NewMoney(linePO.UnitPrice, linePO.UnitCurrency),
			Subtotal:    *shared.NewMoney(linePO.Subtotal, linePO.SubtotalCurrency),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              po.ID,
		UserID:          po.UserID,
		Lines:           lines,
		Total:           *shared.NewMoney(po.TotalAmount, po.TotalCurrency),
		Status:          order.Status(po.Status),
		DeliveryAddress: po.DeliveryAddress,
		Version:         po.Version,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	})
}
