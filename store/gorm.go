// Package store backs the checkout package's persistence interfaces
// with GORM.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/checkout"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// generateOrderRef builds a unique, human-readable order reference.
// Example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func (s *GormStore) CreateOrder(ctx context.Context, record checkout.OrderRecord) (string, error) {
	order := models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          record.UserID,
		TotalAmount:     record.TotalAmount,
		ShippingAddress: record.ShippingAddress,
		Status:          record.Status,
		PaymentStatus:   string(record.PaymentStatus),
		PaymentID:       record.PaymentID,
		CreatedAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", err
	}
	return order.OrderRef, nil
}

func (s *GormStore) CreateOrderItems(ctx context.Context, orderRef string, items []checkout.OrderItemRecord) error {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
		return err
	}

	rows := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *GormStore) ClearCart(ctx context.Context, userID string) error {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// Lines loads the cart and resolves each item against the products
// table, so prices and names are current at render time.
func (s *GormStore) Lines(ctx context.Context, userID string) ([]checkout.CartLine, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, nil
	}

	productIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]checkout.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			// Product deleted since it was added; skip the stale line.
			continue
		}
		lines = append(lines, checkout.CartLine{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			UnitPrice:   product.SellingPrice,
			Quantity:    item.Quantity,
		})
	}
	return lines, nil
}
