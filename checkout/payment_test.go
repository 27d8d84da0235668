package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidReference_Boundary(t *testing.T) {
	assert.False(t, ValidReference("12345"))
	assert.True(t, ValidReference("123456"))
	// Trimmed length is what counts.
	assert.False(t, ValidReference("  12345  "))
	assert.True(t, ValidReference("  123456  "))
	assert.False(t, ValidReference("      "))
}

func TestNewUPIPayment_Encoding(t *testing.T) {
	pay, err := NewUPIPayment(ProviderGPay, "123456789012")
	require.NoError(t, err)

	assert.Equal(t, MethodUPI, pay.Method())
	assert.Equal(t, PaymentStatusPaid, pay.Status())
	assert.Equal(t, "UPI:GPAY:123456789012", pay.PaymentID())
}

func TestNewCODPayment_Encoding(t *testing.T) {
	pay, err := NewCODPayment(ProviderPhonePe, "123456789012")
	require.NoError(t, err)

	assert.Equal(t, MethodCOD, pay.Method())
	assert.Equal(t, PaymentStatusCODFeePaid, pay.Status())
	assert.Equal(t, "COD:FEE_PAID:PHONEPE:123456789012", pay.PaymentID())
}

func TestNewPayment_OtherProviderEncodesAsUPI(t *testing.T) {
	pay, err := NewUPIPayment(ProviderOther, "UTR000111222")
	require.NoError(t, err)
	assert.Equal(t, "UPI:UPI:UTR000111222", pay.PaymentID())
}

func TestNewPayment_TrimsReference(t *testing.T) {
	pay, err := NewUPIPayment(ProviderPaytm, "  UTR000111222  ")
	require.NoError(t, err)
	assert.Equal(t, "UPI:PAYTM:UTR000111222", pay.PaymentID())
}

func TestNewPayment_ShortReference(t *testing.T) {
	_, err := NewUPIPayment(ProviderGPay, "55555")
	assert.ErrorIs(t, err, ErrReferenceTooShort)

	_, err = NewCODPayment(ProviderGPay, "  5555  ")
	assert.ErrorIs(t, err, ErrReferenceTooShort)

	// Exactly six characters passes.
	_, err = NewCODPayment(ProviderGPay, "555555")
	assert.NoError(t, err)
}

func TestNewPayment_UnknownProvider(t *testing.T) {
	_, err := NewUPIPayment(Provider("venmo"), "123456789012")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestProvider_DisplayNames(t *testing.T) {
	assert.Equal(t, "Google Pay", ProviderGPay.DisplayName())
	assert.Equal(t, "PhonePe", ProviderPhonePe.DisplayName())
	assert.Equal(t, "Paytm", ProviderPaytm.DisplayName())
	assert.Equal(t, "Other UPI", ProviderOther.DisplayName())
}
