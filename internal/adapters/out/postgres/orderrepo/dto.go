// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The unique index on the order number is the final authority on number
// uniqueness; the generator's pre-check only narrows the race window.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber    string    `gorm:"uniqueIndex"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	UserName       string
	UserEmail      string
	Address        string
	TrackingNumber string
	Status         int `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	Lines          []LineDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order line row. Lines are immutable after creation
// and always written together with their order.
type LineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
// Line rows get fresh surrogate ids on every mapping; they are only inserted
// once, at order creation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	lineDTOs := make([]LineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, LineDTO{
			ID:          uuid.New(),
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   line.ProductID().Bytes(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrderNumber:    aggregate.OrderNumber(),
		UserID:         aggregate.UserID().Bytes(),
		UserName:       aggregate.UserName(),
		UserEmail:      aggregate.UserEmail(),
		Address:        aggregate.Address(),
		TrackingNumber: aggregate.TrackingNumber(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Lines:          lineDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productID, lineDTO.ProductName, lineDTO.Quantity, lineDTO.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		userID,
		dto.UserName,
		dto.UserEmail,
		dto.Address,
		dto.TrackingNumber,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		lines,
	)
}
