package dto

import (
	"time"

	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Representaciones externas de las entidades. Los nombres de campo siguen el
// layout persistido (id_inventory, id_home, ...) y el status viaja como "A"/"I".

type InventoryResponse struct {
	ID           int64  `json:"id_inventory"`
	ProductID    int64  `json:"product_id"`
	InitialStock int    `json:"initial_stock"`
	CurrentStock int    `json:"current_stock"`
	Status       string `json:"status"`
}

type TransactionResponse struct {
	ID            int64     `json:"id_transaction"`
	InventoryID   int64     `json:"inventory_id"`
	ProductID     int64     `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason,omitempty"`
	Date          time.Time `json:"date"`
	UserID        int64     `json:"user_id,omitempty"`
	Status        string    `json:"status"`
	ConsumptionID *int64    `json:"consumption_id,omitempty"`
	Reference     string    `json:"reference,omitempty"`
}

type ConsumptionResponse struct {
	ID        int64           `json:"id_consumption"`
	Date      string          `json:"date"` // yyyy-MM-dd
	HomeID    int64           `json:"id_home"`
	ProductID int64           `json:"product_id"`
	Names     string          `json:"names,omitempty"`
	Quantity  int             `json:"quantity"`
	Weight    decimal.Decimal `json:"weight"`
	Price     decimal.Decimal `json:"price"`
	SaleValue decimal.Decimal `json:"salevalue"`
	Status    string          `json:"status"`
}

type HomeResponse struct {
	ID      int64  `json:"id_home"`
	Names   string `json:"names"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status"`
}

func FromInventory(inv *entity.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:           inv.ID,
		ProductID:    inv.ProductID,
		InitialStock: inv.InitialStock,
		CurrentStock: inv.CurrentStock,
		Status:       inv.Status,
	}
}

func FromInventories(list []*entity.Inventory) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInventory(inv))
	}
	return out
}

func FromTransaction(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		InventoryID:   tx.InventoryID,
		ProductID:     tx.ProductID,
		Type:          tx.Type,
		Quantity:      tx.Quantity,
		PreviousStock: tx.PreviousStock,
		NewStock:      tx.NewStock,
		Reason:        tx.Reason,
		Date:          tx.Date,
		UserID:        tx.UserID,
		Status:        tx.Status,
		ConsumptionID: tx.ConsumptionID,
		Reference:     tx.Reference,
	}
}

func FromTransactions(list []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, FromTransaction(tx))
	}
	return out
}

func FromConsumption(c *entity.Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:        c.ID,
		Date:      c.Date.Format("2006-01-02"),
		HomeID:    c.HomeID,
		ProductID: c.ProductID,
		Names:     c.Names,
		Quantity:  c.Quantity,
		Weight:    c.Weight,
		Price:     c.Price,
		SaleValue: c.SaleValue,
		Status:    c.Status,
	}
}

func FromConsumptions(list []*entity.Consumption) []ConsumptionResponse {
	out := make([]ConsumptionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromConsumption(c))
	}
	return out
}

func FromHome(h *entity.Home) HomeResponse {
	return HomeResponse{ID: h.ID, Names: h.Names, Address: h.Address, Status: h.Status}
}

func FromHomes(list []*entity.Home) []HomeResponse {
	out := make([]HomeResponse, 0, len(list))
	for _, h := range list {
		out = append(out, FromHome(h))
	}
	return out
}
