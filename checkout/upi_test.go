package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPIWidget_ConfirmGate(t *testing.T) {
	w := NewUPIWidget(1000, "https://cdn.example.com/qr.png", nil)
	w.Proceed()

	w.SetReference("55555")
	assert.False(t, w.CanConfirm(), "5 characters must stay disabled")

	w.SetReference("555555")
	assert.True(t, w.CanConfirm(), "6 characters must enable confirm")

	w.SetDisabled(true)
	assert.False(t, w.CanConfirm(), "submitting state disables confirm")

	assert.ErrorIs(t, w.Confirm(), ErrConfirmDisabled)
}

func TestUPIWidget_ConfirmEmitsReferenceAndProvider(t *testing.T) {
	var gotRef string
	var gotProvider Provider
	w := NewUPIWidget(500, "https://cdn.example.com/qr.png", func(ref string, p Provider) {
		gotRef = ref
		gotProvider = p
	})

	require.NoError(t, w.SelectProvider(ProviderPaytm))
	w.Proceed()
	w.SetReference("UTR000111222")
	require.NoError(t, w.Confirm())

	assert.Equal(t, "UTR000111222", gotRef)
	assert.Equal(t, ProviderPaytm, gotProvider)
}

func TestUPIWidget_ShortReferenceRejected(t *testing.T) {
	called := false
	w := NewUPIWidget(500, "", func(string, Provider) { called = true })
	w.SetReference("   55  ")

	assert.ErrorIs(t, w.Confirm(), ErrReferenceTooShort)
	assert.False(t, called)
}

func TestUPIWidget_DefaultsAndProviderSelection(t *testing.T) {
	w := NewUPIWidget(59, "", nil)

	assert.Equal(t, ProviderGPay, w.Provider())
	assert.Equal(t, PlaceholderQRCodeURL, w.QRCodeURL, "empty QR target falls back to placeholder")

	assert.ErrorIs(t, w.SelectProvider(Provider("cash")), ErrUnknownProvider)
	assert.Equal(t, ProviderGPay, w.Provider())
}

func TestUPIWidget_QRFailureIsCosmetic(t *testing.T) {
	w := NewUPIWidget(1000, "https://cdn.example.com/broken.png", nil)
	w.Proceed()
	w.SetReference("123456789012")

	w.QRCodeFailed()

	assert.Equal(t, PlaceholderQRCodeURL, w.QRCodeURL)
	assert.True(t, w.CanConfirm(), "QR failure must not affect confirmation")
}

func TestUPIWidget_ChooseDifferentMethodKeepsReference(t *testing.T) {
	w := NewUPIWidget(1000, "", nil)
	w.Proceed()
	w.SetReference("123456789012")
	w.ChooseDifferentMethod()

	assert.False(t, w.ShowingQR())
	assert.Equal(t, "123456789012", w.Reference())
}

func TestOfferCountdown_WrapsInsteadOfExpiring(t *testing.T) {
	c := StartOfferCountdown(time.Second)
	defer c.Stop()

	// Enough wall time for the one-second window to hit zero at least
	// twice; it must wrap back to the window each time.
	time.Sleep(2500 * time.Millisecond)

	r := c.Remaining()
	assert.Greater(t, r, time.Duration(0), "countdown must wrap back, never reach zero")
	assert.LessOrEqual(t, r, time.Second)
}

func TestOfferCountdown_StopIsIdempotent(t *testing.T) {
	c := StartOfferCountdown(time.Minute)
	c.Stop()
	c.Stop()
}
