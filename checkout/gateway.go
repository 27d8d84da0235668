package checkout

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty")

// CartLine is one cart entry with its pricing resolved at read time.
type CartLine struct {
	ProductID   uint
	ProductName string
	UnitPrice   float64
	Quantity    int
}

// Subtotal sums selling price × quantity over the lines.
func Subtotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// CartSource reads the buyer's current cart. The checkout flow
// consumes the cart; it does not own it.
type CartSource interface {
	Lines(ctx context.Context, userID string) ([]CartLine, error)
}

// OrderRecord is the order header handed to the store.
type OrderRecord struct {
	UserID          string
	TotalAmount     float64
	ShippingAddress string
	Status          string
	PaymentStatus   PaymentStatus
	PaymentID       string
}

// OrderItemRecord is one persisted line-item snapshot.
type OrderItemRecord struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       float64
}

// Store is the persistence surface the gateway writes through.
// Implementations return the created order's reference from
// CreateOrder so the buyer can be shown it.
type Store interface {
	CreateOrder(ctx context.Context, order OrderRecord) (orderRef string, err error)
	CreateOrderItems(ctx context.Context, orderRef string, items []OrderItemRecord) error
	ClearCart(ctx context.Context, userID string) error
}

// Gateway persists a completed checkout: one order header, one item row
// per cart line, then a cart clear.
type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// Submit runs the three persistence steps in order and never retries.
// If the header insert fails nothing is written and the cart is
// untouched. The steps are not one transaction: an item insert failing
// after the header succeeded leaves a header with no items. That gap is
// inherited from the original storefront; closing it means moving all
// three steps into one transaction in the Store implementation.
func (g *Gateway) Submit(ctx context.Context, userID string, lines []CartLine, addr ShippingAddress, total float64, pay PaymentDescriptor) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	if !addr.Complete() {
		return "", ErrAddressIncomplete
	}

	orderRef, err := g.store.CreateOrder(ctx, OrderRecord{
		UserID:          userID,
		TotalAmount:     total,
		ShippingAddress: addr.Flatten(),
		Status:          OrderStatusConfirmed,
		PaymentStatus:   pay.Status(),
		PaymentID:       pay.PaymentID(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]OrderItemRecord, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItemRecord{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
		})
	}
	if err := g.store.CreateOrderItems(ctx, orderRef, items); err != nil {
		return "", fmt.Errorf("failed to create order items: %w", err)
	}

	if err := g.store.ClearCart(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to clear cart: %w", err)
	}

	return orderRef, nil
}
