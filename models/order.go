package models

import "time"

// Orders are written once at checkout completion and never updated by
// the storefront afterwards. Status is always "confirmed" at creation;
// payment_status and payment_id come straight from the checkout
// payment descriptor (see the checkout package).
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          string      `gorm:"not null;index" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"user"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `gorm:"type:text" json:"shipping_address"`
	Status          string      `gorm:"type:VARCHAR(20)" json:"status"`
	PaymentStatus   string      `gorm:"type:VARCHAR(20)" json:"payment_status"`
	PaymentID       string      `json:"payment_id"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem snapshots one cart line at submission time, so later
// product edits never rewrite order history.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
