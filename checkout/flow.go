package checkout

import (
	"context"
	"errors"
)

// Step is one screen of the checkout wizard.
type Step string

const (
	StepAddress Step = "address"
	StepSummary Step = "summary"
	StepPayment Step = "payment"
)

var (
	ErrFlowComplete   = errors.New("order already placed")
	ErrSubmitting     = errors.New("submission already in progress")
	ErrNotPaymentStep = errors.New("not on the payment step")
	ErrWrongMethod    = errors.New("selected payment method does not match")
	ErrModalClosed    = errors.New("cod fee confirmation is not open")
)

// Flow is one checkout session: a single-threaded state machine walking
// address → summary → payment, ending in a terminal "placed" state that
// none of the steps can be re-entered from. Callers serialize access;
// the flow itself holds no lock.
type Flow struct {
	userID    string
	cart      CartSource
	gateway   *Gateway
	qrCodeURL string

	step         Step
	addr         ShippingAddress
	method       Method
	codModalOpen bool
	submitting   bool
	placed       bool
	orderRef     string

	orderWidget *UPIWidget // scoped to the order total
	feeWidget   *UPIWidget // scoped to the COD fee, lives inside the modal
}

// NewFlow starts a checkout for the given buyer. A stale link with an
// empty cart refuses to start.
func NewFlow(ctx context.Context, userID string, cart CartSource, gateway *Gateway, qrCodeURL string) (*Flow, error) {
	lines, err := cart.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return &Flow{
		userID:    userID,
		cart:      cart,
		gateway:   gateway,
		qrCodeURL: qrCodeURL,
		step:      StepAddress,
		method:    MethodUPI,
	}, nil
}

func (f *Flow) Step() Step               { return f.step }
func (f *Flow) Placed() bool             { return f.placed }
func (f *Flow) OrderRef() string         { return f.orderRef }
func (f *Flow) Address() ShippingAddress { return f.addr }
func (f *Flow) Method() Method           { return f.method }
func (f *Flow) CODModalOpen() bool       { return f.codModalOpen }
func (f *Flow) OrderWidget() *UPIWidget  { return f.orderWidget }
func (f *Flow) FeeWidget() *UPIWidget    { return f.feeWidget }

// State is a snapshot for rendering.
type State struct {
	Step         Step            `json:"step"`
	Placed       bool            `json:"placed"`
	OrderRef     string          `json:"order_ref,omitempty"`
	Address      ShippingAddress `json:"address"`
	Method       Method          `json:"method"`
	CODModalOpen bool            `json:"cod_modal_open"`
	Submitting   bool            `json:"submitting"`
}

func (f *Flow) State() State {
	return State{
		Step:         f.step,
		Placed:       f.placed,
		OrderRef:     f.orderRef,
		Address:      f.addr,
		Method:       f.method,
		CODModalOpen: f.codModalOpen,
		Submitting:   f.submitting,
	}
}

// SetAddress updates the draft. Drafts are never cleared by navigation.
func (f *Flow) SetAddress(addr ShippingAddress) error {
	if f.placed {
		return ErrFlowComplete
	}
	f.addr = addr
	return nil
}

// Next advances one step. address → summary is guarded by the address
// being complete; summary → payment is unconditional.
func (f *Flow) Next(ctx context.Context) error {
	if f.placed {
		return ErrFlowComplete
	}
	switch f.step {
	case StepAddress:
		if !f.addr.Complete() {
			return ErrAddressIncomplete
		}
		f.step = StepSummary
	case StepSummary:
		lines, err := f.cart.Lines(ctx, f.userID)
		if err != nil {
			return err
		}
		f.orderWidget = NewUPIWidget(Subtotal(lines), f.qrCodeURL, nil)
		f.step = StepPayment
	}
	return nil
}

// Back moves one step toward the address form. Always permitted and
// lossless; on the first step it is a no-op.
func (f *Flow) Back() error {
	if f.placed {
		return ErrFlowComplete
	}
	switch f.step {
	case StepPayment:
		f.codModalOpen = false
		f.step = StepSummary
	case StepSummary:
		f.step = StepAddress
	}
	return nil
}

// Summary is the read-only review computed from the cart store.
type Summary struct {
	Lines    []CartLine `json:"lines"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"` // delivery is free, so equal to Subtotal
}

func (f *Flow) Summary(ctx context.Context) (Summary, error) {
	lines, err := f.cart.Lines(ctx, f.userID)
	if err != nil {
		return Summary{}, err
	}
	subtotal := Subtotal(lines)
	return Summary{Lines: lines, Subtotal: subtotal, Total: subtotal}, nil
}

// SelectMethod picks UPI or COD on the payment step.
func (f *Flow) SelectMethod(m Method) error {
	if f.placed {
		return ErrFlowComplete
	}
	if f.step != StepPayment {
		return ErrNotPaymentStep
	}
	if !m.Valid() {
		return errors.New("invalid payment method")
	}
	f.method = m
	if m != MethodCOD {
		f.codModalOpen = false
	}
	return nil
}

// OpenCODModal opens the convenience-fee confirmation with its own
// widget instance scoped to the fixed fee, not the order total.
func (f *Flow) OpenCODModal() error {
	if f.placed {
		return ErrFlowComplete
	}
	if f.step != StepPayment {
		return ErrNotPaymentStep
	}
	if f.method != MethodCOD {
		return ErrWrongMethod
	}
	if !f.addr.Complete() {
		return ErrAddressIncomplete
	}
	if f.feeWidget == nil {
		f.feeWidget = NewUPIWidget(CODFee, f.qrCodeURL, nil)
	}
	f.codModalOpen = true
	return nil
}

func (f *Flow) CloseCODModal() {
	f.codModalOpen = false
}

// ConfirmUPI accepts the buyer's UTR for the full order total and
// submits the order. On failure the flow stays on the payment step with
// the cart intact so the buyer can resubmit; there are no automatic
// retries.
func (f *Flow) ConfirmUPI(ctx context.Context, provider Provider, reference string) error {
	if f.method != MethodUPI {
		return ErrWrongMethod
	}
	return f.confirm(ctx, f.orderWidget, provider, reference, NewUPIPayment)
}

// ConfirmCODFee accepts the buyer's UTR for the convenience fee. The
// modal closes first, then the order is submitted with a COD
// descriptor; the fee never joins the order total.
func (f *Flow) ConfirmCODFee(ctx context.Context, provider Provider, reference string) error {
	if f.method != MethodCOD {
		return ErrWrongMethod
	}
	if !f.codModalOpen {
		return ErrModalClosed
	}
	f.codModalOpen = false
	return f.confirm(ctx, f.feeWidget, provider, reference, NewCODPayment)
}

func (f *Flow) confirm(ctx context.Context, w *UPIWidget, provider Provider, reference string, build func(Provider, string) (PaymentDescriptor, error)) error {
	if f.placed {
		return ErrFlowComplete
	}
	if f.step != StepPayment {
		return ErrNotPaymentStep
	}
	if f.submitting {
		return ErrSubmitting
	}
	if !f.addr.Complete() {
		return ErrAddressIncomplete
	}

	if w != nil {
		if err := w.SelectProvider(provider); err != nil {
			return err
		}
		w.Proceed()
		w.SetReference(reference)
		if !w.CanConfirm() {
			return ErrReferenceTooShort
		}
	}

	pay, err := build(provider, reference)
	if err != nil {
		return err
	}

	f.submitting = true
	if w != nil {
		w.SetDisabled(true)
	}
	defer func() {
		f.submitting = false
		if w != nil {
			w.SetDisabled(false)
		}
	}()

	lines, err := f.cart.Lines(ctx, f.userID)
	if err != nil {
		return err
	}

	orderRef, err := f.gateway.Submit(ctx, f.userID, lines, f.addr, Subtotal(lines), pay)
	if err != nil {
		return err
	}

	f.placed = true
	f.orderRef = orderRef
	return nil
}
