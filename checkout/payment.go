package checkout

import (
	"errors"
	"strings"
)

// Provider is one of the UPI apps the buyer can pay with.
type Provider string

const (
	ProviderGPay    Provider = "gpay"
	ProviderPhonePe Provider = "phonepe"
	ProviderPaytm   Provider = "paytm"
	ProviderOther   Provider = "upi"
)

// Providers lists the selectable UPI apps in display order.
var Providers = []Provider{ProviderGPay, ProviderPhonePe, ProviderPaytm, ProviderOther}

func (p Provider) Valid() bool {
	switch p {
	case ProviderGPay, ProviderPhonePe, ProviderPaytm, ProviderOther:
		return true
	}
	return false
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderGPay:
		return "Google Pay"
	case ProviderPhonePe:
		return "PhonePe"
	case ProviderPaytm:
		return "Paytm"
	case ProviderOther:
		return "Other UPI"
	}
	return string(p)
}

// Method is the buyer's payment choice on the payment step.
type Method string

const (
	MethodUPI Method = "upi"
	MethodCOD Method = "cod"
)

func (m Method) Valid() bool {
	return m == MethodUPI || m == MethodCOD
}

type PaymentStatus string

const (
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusCODFeePaid PaymentStatus = "cod_fee_paid"
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusCOD        PaymentStatus = "cod"
)

func (s PaymentStatus) String() string { return string(s) }

const (
	// OrderStatusConfirmed is the only status checkout ever writes.
	OrderStatusConfirmed = "confirmed"

	// MinReferenceLen is the minimum trimmed length of a UTR number.
	// The reference is asserted by the buyer, never verified.
	MinReferenceLen = 6

	// CODFee is the fixed convenience fee (₹) collected online before a
	// cash-on-delivery order is accepted. It is charged separately and
	// never added to the order's total amount.
	CODFee = 59.0
)

var (
	ErrReferenceTooShort = errors.New("transaction reference must be at least 6 characters")
	ErrUnknownProvider   = errors.New("unknown UPI provider")
)

// ValidReference reports whether a buyer-entered UTR number passes the
// trivial length check.
func ValidReference(ref string) bool {
	return len(strings.TrimSpace(ref)) >= MinReferenceLen
}

// PaymentDescriptor is a tagged value: either a UPI payment of the full
// order total or a confirmed COD convenience fee. The zero value is not
// usable; build one with NewUPIPayment or NewCODPayment.
type PaymentDescriptor struct {
	method    Method
	provider  Provider
	reference string
}

func NewUPIPayment(provider Provider, reference string) (PaymentDescriptor, error) {
	return newDescriptor(MethodUPI, provider, reference)
}

func NewCODPayment(provider Provider, feeReference string) (PaymentDescriptor, error) {
	return newDescriptor(MethodCOD, provider, feeReference)
}

func newDescriptor(m Method, provider Provider, reference string) (PaymentDescriptor, error) {
	if !provider.Valid() {
		return PaymentDescriptor{}, ErrUnknownProvider
	}
	reference = strings.TrimSpace(reference)
	if len(reference) < MinReferenceLen {
		return PaymentDescriptor{}, ErrReferenceTooShort
	}
	return PaymentDescriptor{method: m, provider: provider, reference: reference}, nil
}

func (d PaymentDescriptor) Method() Method      { return d.method }
func (d PaymentDescriptor) Provider() Provider  { return d.provider }
func (d PaymentDescriptor) Reference() string   { return d.reference }

// Status derives the order's payment status from the variant alone.
func (d PaymentDescriptor) Status() PaymentStatus {
	switch d.method {
	case MethodCOD:
		return PaymentStatusCODFeePaid
	default:
		return PaymentStatusPaid
	}
}

// PaymentID renders the colon-delimited encoding stored on the order,
// e.g. "UPI:GPAY:123456789012" or "COD:FEE_PAID:PHONEPE:123456789012".
// Order history from earlier storefront versions uses the same format.
func (d PaymentDescriptor) PaymentID() string {
	provider := strings.ToUpper(string(d.provider))
	switch d.method {
	case MethodCOD:
		return "COD:FEE_PAID:" + provider + ":" + d.reference
	default:
		return "UPI:" + provider + ":" + d.reference
	}
}
