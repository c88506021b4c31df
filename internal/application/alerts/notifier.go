// Package alerts escanea periódicamente los niveles bajo umbral mínimo y los
// notifica a un webhook externo (Slack, n8n, lo que el operador configure).
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// Notifier destino de las alertas de stock bajo.
type Notifier interface {
	NotifyLowStock(ctx context.Context, levels []*entity.StockLevel) error
}

// WebhookConfig configuración del webhook de alertas.
type WebhookConfig struct {
	URL     string
	Token   string // opcional; va como Bearer si está presente
	Timeout time.Duration
}

// WebhookNotifier envía las alertas como JSON por POST.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookNotifier construye el notificador con su cliente HTTP.
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2)
	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	return &WebhookNotifier{httpClient: restyClient, url: cfg.URL}
}

type lowStockAlert struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	SKUCode        string `json:"sku_code"`
	LocationID     string `json:"location_id"`
	LocationName   string `json:"location_name"`
	WarehouseName  string `json:"warehouse_name"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
	MinStockLevel  int64  `json:"min_stock_level"`
}

type lowStockPayload struct {
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	Alerts    []lowStockAlert `json:"alerts"`
}

// NotifyLowStock publica el lote de alertas. Un status no-2xx es error.
func (n *WebhookNotifier) NotifyLowStock(ctx context.Context, levels []*entity.StockLevel) error {
	alerts := make([]lowStockAlert, 0, len(levels))
	for _, lvl := range levels {
		alerts = append(alerts, lowStockAlert{
			ProductID:      lvl.ProductID,
			ProductName:    lvl.ProductName,
			SKUCode:        lvl.SKUCode,
			LocationID:     lvl.LocationID,
			LocationName:   lvl.LocationName,
			WarehouseName:  lvl.WarehouseName,
			QuantityOnHand: lvl.QuantityOnHand,
			MinStockLevel:  lvl.MinStockLevel,
		})
	}
	payload := lowStockPayload{
		Event:     "stock.low",
		Timestamp: time.Now().UTC(),
		Count:     len(alerts),
		Alerts:    alerts,
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post low stock webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("low stock webhook status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
