package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCart implements CartSource over the fakeStore's cleared-cart
// bookkeeping so a successful submit empties it.
type fakeCart struct {
	lines map[string][]CartLine
	err   error
}

func newFakeCart(userID string, lines ...CartLine) *fakeCart {
	return &fakeCart{lines: map[string][]CartLine{userID: lines}}
}

func (c *fakeCart) Lines(_ context.Context, userID string) ([]CartLine, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.lines[userID], nil
}

// clearingStore empties the fake cart when the gateway clears it, so
// end-to-end tests observe the cart emptying.
type clearingStore struct {
	*fakeStore
	cart *fakeCart
}

func (s *clearingStore) ClearCart(ctx context.Context, userID string) error {
	if err := s.fakeStore.ClearCart(ctx, userID); err != nil {
		return err
	}
	s.cart.lines[userID] = nil
	return nil
}

func newTestFlow(t *testing.T, lines ...CartLine) (*Flow, *fakeStore, *fakeCart) {
	t.Helper()
	cart := newFakeCart("user-1", lines...)
	store := newFakeStore()
	gw := NewGateway(&clearingStore{fakeStore: store, cart: cart})
	flow, err := NewFlow(context.Background(), "user-1", cart, gw, "https://cdn.example.com/qr.png")
	require.NoError(t, err)
	return flow, store, cart
}

func advanceToPayment(t *testing.T, flow *Flow) {
	t.Helper()
	require.NoError(t, flow.SetAddress(testAddress))
	require.NoError(t, flow.Next(context.Background()))
	require.NoError(t, flow.Next(context.Background()))
	require.Equal(t, StepPayment, flow.Step())
}

func TestFlow_EmptyCartRefusesToStart(t *testing.T) {
	cart := newFakeCart("user-1")
	gw := NewGateway(newFakeStore())

	_, err := NewFlow(context.Background(), "user-1", cart, gw, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFlow_AddressGuard(t *testing.T) {
	flow, _, _ := newTestFlow(t, CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1})

	addr := testAddress
	addr.City = ""
	require.NoError(t, flow.SetAddress(addr))

	err := flow.Next(context.Background())
	assert.ErrorIs(t, err, ErrAddressIncomplete)
	assert.Equal(t, StepAddress, flow.Step(), "failed guard keeps the step")
	assert.Equal(t, []string{"city"}, flow.Address().MissingFields())

	require.NoError(t, flow.SetAddress(testAddress))
	require.NoError(t, flow.Next(context.Background()))
	assert.Equal(t, StepSummary, flow.Step())
}

func TestFlow_BackIsLossless(t *testing.T) {
	flow, _, _ := newTestFlow(t,
		CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1},
	)
	advanceToPayment(t, flow)

	require.NoError(t, flow.Back())
	assert.Equal(t, StepSummary, flow.Step())
	require.NoError(t, flow.Back())
	assert.Equal(t, StepAddress, flow.Step())
	// Back on the first step is a no-op.
	require.NoError(t, flow.Back())
	assert.Equal(t, StepAddress, flow.Step())

	assert.Equal(t, testAddress, flow.Address(), "draft survives navigation")

	// Re-entering summary does not duplicate cart lines.
	require.NoError(t, flow.Next(context.Background()))
	summary, err := flow.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.Lines, 1)
	assert.Equal(t, 150.0, summary.Total)
}

func TestFlow_SummaryComputesTotals(t *testing.T) {
	flow, _, _ := newTestFlow(t,
		CartLine{ProductID: 1, ProductName: "Kettle", UnitPrice: 500, Quantity: 2},
	)

	summary, err := flow.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, summary.Subtotal)
	assert.Equal(t, 1000.0, summary.Total, "delivery is free")
}

func TestFlow_UPIEndToEnd(t *testing.T) {
	flow, store, cart := newTestFlow(t,
		CartLine{ProductID: 1, ProductName: "Kettle", UnitPrice: 500, Quantity: 2},
	)
	advanceToPayment(t, flow)

	require.NotNil(t, flow.OrderWidget())
	assert.Equal(t, 1000.0, flow.OrderWidget().Amount, "widget is scoped to the order total")

	require.NoError(t, flow.ConfirmUPI(context.Background(), ProviderPaytm, "UTR000111222"))

	assert.True(t, flow.Placed())
	assert.Equal(t, "ord-0001", flow.OrderRef())

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "UPI:PAYTM:UTR000111222", order.PaymentID)

	items := store.items["ord-0001"]
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 500.0, items[0].Price)

	lines, err := cart.Lines(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, lines, "cart is cleared after placement")
}

func TestFlow_CODEndToEnd(t *testing.T) {
	flow, store, _ := newTestFlow(t,
		CartLine{ProductID: 3, ProductName: "Lamp", UnitPrice: 750, Quantity: 1},
	)
	advanceToPayment(t, flow)

	require.NoError(t, flow.SelectMethod(MethodCOD))
	require.NoError(t, flow.OpenCODModal())
	require.NotNil(t, flow.FeeWidget())
	assert.Equal(t, CODFee, flow.FeeWidget().Amount, "fee widget is scoped to the fixed fee")

	require.NoError(t, flow.ConfirmCODFee(context.Background(), ProviderGPay, "555555"))

	assert.True(t, flow.Placed())
	assert.False(t, flow.CODModalOpen())

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, 750.0, order.TotalAmount, "COD fee is not added to the order total")
	assert.Equal(t, PaymentStatusCODFeePaid, order.PaymentStatus)
	assert.Equal(t, "COD:FEE_PAID:GPAY:555555", order.PaymentID)
}

func TestFlow_CODModalRequiredForFeeConfirm(t *testing.T) {
	flow, _, _ := newTestFlow(t, CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1})
	advanceToPayment(t, flow)
	require.NoError(t, flow.SelectMethod(MethodCOD))

	err := flow.ConfirmCODFee(context.Background(), ProviderGPay, "555555")
	assert.ErrorIs(t, err, ErrModalClosed)

	// Switching back to UPI closes the COD path entirely.
	require.NoError(t, flow.OpenCODModal())
	require.NoError(t, flow.SelectMethod(MethodUPI))
	assert.False(t, flow.CODModalOpen())
	assert.ErrorIs(t, flow.ConfirmCODFee(context.Background(), ProviderGPay, "555555"), ErrWrongMethod)
}

func TestFlow_SubmitFailureAllowsResubmit(t *testing.T) {
	flow, store, cart := newTestFlow(t,
		CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1},
	)
	advanceToPayment(t, flow)

	store.orderErr = errors.New("insert rejected")
	err := flow.ConfirmUPI(context.Background(), ProviderGPay, "123456789012")
	require.Error(t, err)

	assert.False(t, flow.Placed())
	assert.Equal(t, StepPayment, flow.Step(), "failure returns the buyer to an actionable state")
	lines, _ := cart.Lines(context.Background(), "user-1")
	assert.Len(t, lines, 1, "cart keeps its items on failure")

	// User-initiated retry succeeds once persistence recovers.
	store.orderErr = nil
	require.NoError(t, flow.ConfirmUPI(context.Background(), ProviderGPay, "123456789012"))
	assert.True(t, flow.Placed())
}

func TestFlow_ShortReferenceBlocksSubmission(t *testing.T) {
	flow, store, _ := newTestFlow(t, CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1})
	advanceToPayment(t, flow)

	err := flow.ConfirmUPI(context.Background(), ProviderGPay, " 55555 ")
	assert.ErrorIs(t, err, ErrReferenceTooShort)
	assert.Empty(t, store.orders, "no persistence attempted on validation failure")
}

func TestFlow_TerminalStateLocksSteps(t *testing.T) {
	flow, _, _ := newTestFlow(t, CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1})
	advanceToPayment(t, flow)
	require.NoError(t, flow.ConfirmUPI(context.Background(), ProviderGPay, "123456789012"))

	assert.ErrorIs(t, flow.Next(context.Background()), ErrFlowComplete)
	assert.ErrorIs(t, flow.Back(), ErrFlowComplete)
	assert.ErrorIs(t, flow.SetAddress(testAddress), ErrFlowComplete)
	assert.ErrorIs(t, flow.SelectMethod(MethodCOD), ErrFlowComplete)
	assert.ErrorIs(t, flow.ConfirmUPI(context.Background(), ProviderGPay, "123456789012"), ErrFlowComplete)
}

func TestFlow_ConfirmRequiresPaymentStep(t *testing.T) {
	flow, _, _ := newTestFlow(t, CartLine{ProductID: 1, ProductName: "Mug", UnitPrice: 150, Quantity: 1})
	require.NoError(t, flow.SetAddress(testAddress))

	err := flow.ConfirmUPI(context.Background(), ProviderGPay, "123456789012")
	assert.ErrorIs(t, err, ErrNotPaymentStep)
}
