package storeapi

import "github.com/condostore/pos-backend/pkg/enums"

// ProductDTO is the catalog row as the settlement backend serves it. Price
// arrives as a decimal string and is converted to cents at the edge.
type ProductDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	TotalStock int    `json:"totalStock"`
	Barcode    string `json:"barcode"`
}

type SaleItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateSaleInput struct {
	Items       []SaleItemInput     `json:"items"`
	PaymentType enums.PaymentMethod `json:"paymentType"`
	ResidentID  *string             `json:"residentId,omitempty"`
}

type AccountDTO struct {
	ID      string              `json:"id"`
	Balance string              `json:"balance"`
	Status  enums.AccountStatus `json:"status"`
}

type ResidentDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CPF       string      `json:"cpf"`
	Apartment string      `json:"apartment"`
	Block     string      `json:"block"`
	Phone     string      `json:"phone"`
	Account   *AccountDTO `json:"account,omitempty"`
}

type CreateResidentInput struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	Apartment string `json:"apartment"`
	Block     string `json:"block"`
	Phone     string `json:"phone,omitempty"`
}

type HistoryEntryDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	CreatedAt   string `json:"createdAt"`
}

type DashboardDTO struct {
	Revenue struct {
		Today       string `json:"today"`
		Month       string `json:"month"`
		OrdersToday int    `json:"ordersToday"`
	} `json:"revenue"`
	Finance struct {
		TotalReceivable string `json:"totalReceivable"`
	} `json:"finance"`
	Alerts struct {
		LowStockCount int `json:"lowStockCount"`
		Items         []struct {
			Name         string `json:"name"`
			CurrentStock int    `json:"currentStock"`
			MinStock     int    `json:"minStock"`
		} `json:"items"`
	} `json:"alerts"`
}

type LoginInput struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

type OperatorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        OperatorDTO `json:"user"`
}
