package checkout

import (
	"errors"
	"sync"
	"time"
)

// PlaceholderQRCodeURL stands in when the configured QR image cannot be
// shown. Cosmetic only; confirmation behaves the same either way.
const PlaceholderQRCodeURL = "https://via.placeholder.com/200x200?text=QR+Code"

var ErrConfirmDisabled = errors.New("confirm is not available yet")

// UPIWidget models one UPI confirmation panel: pick an app, scan the
// QR, enter the UTR number, confirm. It knows nothing about orders; on
// confirm it hands (reference, provider) to its callback and nothing
// else. The checkout flow embeds two independent instances, one for the
// order total and one for the COD fee.
type UPIWidget struct {
	Amount    float64
	QRCodeURL string

	provider  Provider
	reference string
	showQR    bool
	disabled  bool

	onConfirm func(reference string, provider Provider)
}

func NewUPIWidget(amount float64, qrCodeURL string, onConfirm func(reference string, provider Provider)) *UPIWidget {
	if qrCodeURL == "" {
		qrCodeURL = PlaceholderQRCodeURL
	}
	return &UPIWidget{
		Amount:    amount,
		QRCodeURL: qrCodeURL,
		provider:  ProviderGPay,
		onConfirm: onConfirm,
	}
}

func (w *UPIWidget) Provider() Provider { return w.provider }
func (w *UPIWidget) Reference() string  { return w.reference }
func (w *UPIWidget) ShowingQR() bool    { return w.showQR }

func (w *UPIWidget) SelectProvider(p Provider) error {
	if !p.Valid() {
		return ErrUnknownProvider
	}
	w.provider = p
	return nil
}

// Proceed reveals the QR code and reference input.
func (w *UPIWidget) Proceed() { w.showQR = true }

// ChooseDifferentMethod returns to the provider picker. The entered
// reference is kept.
func (w *UPIWidget) ChooseDifferentMethod() { w.showQR = false }

func (w *UPIWidget) SetReference(ref string) { w.reference = ref }

// QRCodeFailed swaps in the generic placeholder image.
func (w *UPIWidget) QRCodeFailed() { w.QRCodeURL = PlaceholderQRCodeURL }

// SetDisabled mirrors the flow's submitting state onto the widget.
func (w *UPIWidget) SetDisabled(disabled bool) { w.disabled = disabled }

// CanConfirm reports whether the confirm action is enabled: the trimmed
// reference is long enough and no submission is in flight.
func (w *UPIWidget) CanConfirm() bool {
	return !w.disabled && ValidReference(w.reference)
}

// Confirm emits (reference, provider) to the caller. It performs no
// network activity itself.
func (w *UPIWidget) Confirm() error {
	if w.disabled {
		return ErrConfirmDisabled
	}
	if !ValidReference(w.reference) {
		return ErrReferenceTooShort
	}
	if w.onConfirm != nil {
		w.onConfirm(w.reference, w.provider)
	}
	return nil
}

// DefaultOfferWindow is the interval the decorative countdown restarts
// from whenever it reaches zero.
const DefaultOfferWindow = 10 * time.Minute

// OfferCountdown is the "offer expires in" ticker shown next to the
// widget. It is purely decorative: reaching zero wraps back to the
// window instead of expiring, and it never gates the confirm action.
type OfferCountdown struct {
	mu        sync.Mutex
	remaining time.Duration
	window    time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

func StartOfferCountdown(window time.Duration) *OfferCountdown {
	if window <= 0 {
		window = DefaultOfferWindow
	}
	c := &OfferCountdown{
		remaining: window,
		window:    window,
		stop:      make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *OfferCountdown) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining -= time.Second
			if c.remaining <= 0 {
				c.remaining = c.window
			}
			c.mu.Unlock()
		}
	}
}

func (c *OfferCountdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Stop cancels the ticker. Safe to call more than once.
func (c *OfferCountdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
