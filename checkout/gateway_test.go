package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements Store for testing, recording every call and
// failing on demand.
type fakeStore struct {
	orders       []OrderRecord
	items        map[string][]OrderItemRecord
	cartsCleared []string

	orderErr error
	itemsErr error
	clearErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string][]OrderItemRecord)}
}

func (s *fakeStore) CreateOrder(_ context.Context, order OrderRecord) (string, error) {
	if s.orderErr != nil {
		return "", s.orderErr
	}
	s.orders = append(s.orders, order)
	return "ord-0001", nil
}

func (s *fakeStore) CreateOrderItems(_ context.Context, orderRef string, items []OrderItemRecord) error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.items[orderRef] = items
	return nil
}

func (s *fakeStore) ClearCart(_ context.Context, userID string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cartsCleared = append(s.cartsCleared, userID)
	return nil
}

var testAddress = ShippingAddress{
	FullName: "Asha Rao",
	Phone:    "9876543210",
	Address:  "12 MG Road",
	City:     "Pune",
	Pincode:  "411001",
}

func TestGateway_Submit(t *testing.T) {
	store := newFakeStore()
	gw := NewGateway(store)

	pay, err := NewUPIPayment(ProviderGPay, "123456789012")
	require.NoError(t, err)

	lines := []CartLine{{ProductID: 7, ProductName: "Kettle", UnitPrice: 500, Quantity: 2}}
	ref, err := gw.Submit(context.Background(), "user-1", lines, testAddress, 1000, pay)

	require.NoError(t, err)
	assert.Equal(t, "ord-0001", ref)

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "UPI:GPAY:123456789012", order.PaymentID)
	assert.Equal(t, "Asha Rao\n9876543210\n12 MG Road\nPune - 411001", order.ShippingAddress)

	require.Len(t, store.items["ord-0001"], 1)
	item := store.items["ord-0001"][0]
	assert.Equal(t, uint(7), item.ProductID)
	assert.Equal(t, "Kettle", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 500.0, item.Price)

	assert.Equal(t, []string{"user-1"}, store.cartsCleared)
}

func TestGateway_Submit_EmptyCart(t *testing.T) {
	store := newFakeStore()
	gw := NewGateway(store)
	pay, _ := NewUPIPayment(ProviderGPay, "123456789012")

	_, err := gw.Submit(context.Background(), "user-1", nil, testAddress, 0, pay)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.orders)
}

func TestGateway_Submit_HeaderFailureWritesNothing(t *testing.T) {
	store := newFakeStore()
	store.orderErr = errors.New("insert rejected")
	gw := NewGateway(store)
	pay, _ := NewUPIPayment(ProviderGPay, "123456789012")
	lines := []CartLine{{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1}}

	_, err := gw.Submit(context.Background(), "user-1", lines, testAddress, 150, pay)

	assert.Error(t, err)
	assert.Empty(t, store.items)
	assert.Empty(t, store.cartsCleared, "cart must be untouched when the header insert fails")
}

func TestGateway_Submit_ItemFailureLeavesHeaderAndCart(t *testing.T) {
	store := newFakeStore()
	store.itemsErr = errors.New("insert rejected")
	gw := NewGateway(store)
	pay, _ := NewUPIPayment(ProviderGPay, "123456789012")
	lines := []CartLine{{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1}}

	_, err := gw.Submit(context.Background(), "user-1", lines, testAddress, 150, pay)

	assert.Error(t, err)
	// Known gap: the header survives without its items.
	assert.Len(t, store.orders, 1)
	assert.Empty(t, store.cartsCleared)
}

func TestSubtotal(t *testing.T) {
	lines := []CartLine{
		{UnitPrice: 500, Quantity: 2},
		{UnitPrice: 59.5, Quantity: 1},
	}
	assert.Equal(t, 1059.5, Subtotal(lines))
	assert.Equal(t, 0.0, Subtotal(nil))
}
