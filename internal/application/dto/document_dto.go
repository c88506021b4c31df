package dto

import (
	"time"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// DocumentItemRequest línea de un documento entrante.
type DocumentItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateReceiptRequest alta de orden de recepción.
type CreateReceiptRequest struct {
	Reference    string                `json:"reference"`
	ScheduleDate time.Time             `json:"schedule_date"`
	Counterparty string                `json:"counterparty"`
	ToLocationID string                `json:"to_location_id"`
	Items        []DocumentItemRequest `json:"items"`
}

// CreateDeliveryRequest alta de orden de entrega.
type CreateDeliveryRequest struct {
	Reference      string                `json:"reference"`
	ScheduleDate   time.Time             `json:"schedule_date"`
	Counterparty   string                `json:"counterparty"`
	FromLocationID string                `json:"from_location_id"`
	Items          []DocumentItemRequest `json:"items"`
}

// CreateTransferRequest alta de orden de traslado interno.
type CreateTransferRequest struct {
	Reference      string    `json:"reference"`
	ProductID      string    `json:"product_id"`
	FromLocationID string    `json:"from_location_id"`
	ToLocationID   string    `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	TransferDate   time.Time `json:"transfer_date"`
}

// RegisterAdjustmentRequest ajuste por conteo físico: cantidad observada.
type RegisterAdjustmentRequest struct {
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	NewQuantity int64  `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// DocumentItemResponse línea de documento.
type DocumentItemResponse struct {
	LineNo    int    `json:"line_no"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ReceiptResponse orden de recepción.
type ReceiptResponse struct {
	ID           string                 `json:"id"`
	Reference    string                 `json:"reference"`
	ScheduleDate time.Time              `json:"schedule_date"`
	Counterparty string                 `json:"counterparty"`
	ToLocationID string                 `json:"to_location_id"`
	Status       string                 `json:"status"`
	ValidatedAt  *time.Time             `json:"validated_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	Items        []DocumentItemResponse `json:"items,omitempty"`
}

// ReceiptFromEntity mapea la entidad al DTO.
func ReceiptFromEntity(r *entity.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:           r.ID,
		Reference:    r.Reference,
		ScheduleDate: r.ScheduleDate,
		Counterparty: r.Counterparty,
		ToLocationID: r.ToLocationID,
		Status:       r.Status,
		ValidatedAt:  r.ValidatedAt,
		CreatedAt:    r.CreatedAt,
		Items:        itemsFromEntities(r.Items),
	}
}

// DeliveryResponse orden de entrega.
type DeliveryResponse struct {
	ID             string                 `json:"id"`
	Reference      string                 `json:"reference"`
	ScheduleDate   time.Time              `json:"schedule_date"`
	Counterparty   string                 `json:"counterparty"`
	FromLocationID string                 `json:"from_location_id"`
	Status         string                 `json:"status"`
	ValidatedAt    *time.Time             `json:"validated_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Items          []DocumentItemResponse `json:"items,omitempty"`
}

// DeliveryFromEntity mapea la entidad al DTO.
func DeliveryFromEntity(d *entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:             d.ID,
		Reference:      d.Reference,
		ScheduleDate:   d.ScheduleDate,
		Counterparty:   d.Counterparty,
		FromLocationID: d.FromLocationID,
		Status:         d.Status,
		ValidatedAt:    d.ValidatedAt,
		CreatedAt:      d.CreatedAt,
		Items:          itemsFromEntities(d.Items),
	}
}

// TransferResponse orden de traslado.
type TransferResponse struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	ProductID      string    `json:"product_id"`
	FromLocationID string    `json:"from_location_id"`
	ToLocationID   string    `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	Status         string    `json:"status"`
	TransferDate   time.Time `json:"transfer_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransferFromEntity mapea la entidad al DTO.
func TransferFromEntity(t *entity.TransferOrder) TransferResponse {
	return TransferResponse{
		ID:             t.ID,
		Reference:      t.Reference,
		ProductID:      t.ProductID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		Status:         t.Status,
		TransferDate:   t.TransferDate,
		CreatedAt:      t.CreatedAt,
	}
}

// AdjustmentResponse registro de ajuste.
type AdjustmentResponse struct {
	ID             string    `json:"id"`
	AdjustmentDate time.Time `json:"adjustment_date"`
	ProductID      string    `json:"product_id"`
	LocationID     string    `json:"location_id"`
	OldQuantity    int64     `json:"old_quantity"`
	NewQuantity    int64     `json:"new_quantity"`
	Difference     int64     `json:"difference"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdjustmentFromEntity mapea la entidad al DTO.
func AdjustmentFromEntity(a *entity.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		AdjustmentDate: a.AdjustmentDate,
		ProductID:      a.ProductID,
		LocationID:     a.LocationID,
		OldQuantity:    a.OldQuantity,
		NewQuantity:    a.NewQuantity,
		Difference:     a.Difference,
		Reason:         a.Reason,
		CreatedAt:      a.CreatedAt,
	}
}

func itemsFromEntities(items []entity.DocumentItem) []DocumentItemResponse {
	out := make([]DocumentItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, DocumentItemResponse{LineNo: it.LineNo, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
