package checkoutControllers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/checkout"
	orderControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/order"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/store"
)

// Manager owns one checkout flow per logged-in user. Flows are
// in-memory session state; the flow itself is single-threaded, so the
// manager serializes access to it.
type Manager struct {
	mu    sync.Mutex
	flows map[string]*checkout.Flow

	db      *gorm.DB
	gateway *checkout.Gateway
	cart    checkout.CartSource
}

func NewManager(db *gorm.DB) *Manager {
	s := store.New(db)
	return &Manager{
		flows:   make(map[string]*checkout.Flow),
		db:      db,
		gateway: checkout.NewGateway(s),
		cart:    s,
	}
}

func userID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := userIDVal.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// qrCodeURL resolves the widget's display target; missing uploads fall
// back to the generic placeholder, which is cosmetic only.
func (m *Manager) qrCodeURL() string {
	qr, err := models.LatestPaymentQR(m.db)
	if err != nil {
		return checkout.PlaceholderQRCodeURL
	}
	return qr.FileURL
}

func respondFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		// Stale link: nothing to check out, send the buyer back.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty", "redirect": "/cart"})
	case errors.Is(err, checkout.ErrAddressIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": checkout.ErrAddressIncomplete.Error()})
	case errors.Is(err, checkout.ErrReferenceTooShort),
		errors.Is(err, checkout.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmitting):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrFlowComplete),
		errors.Is(err, checkout.ErrNotPaymentStep),
		errors.Is(err, checkout.ErrWrongMethod),
		errors.Is(err, checkout.ErrModalClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
	}
}

// POST /user/checkout — start a fresh flow, discarding any stale one.
func (m *Manager) Start(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	flow, err := checkout.NewFlow(c.Request.Context(), uid, m.cart, m.gateway, m.qrCodeURL())
	if err != nil {
		respondFlowError(c, err)
		return
	}

	m.mu.Lock()
	m.flows[uid] = flow
	m.mu.Unlock()

	c.JSON(http.StatusCreated, flow.State())
}

// flow fetches the user's active flow under the manager lock.
func (m *Manager) flow(c *gin.Context) (*checkout.Flow, string, bool) {
	uid, ok := userID(c)
	if !ok {
		return nil, "", false
	}
	m.mu.Lock()
	flow := m.flows[uid]
	m.mu.Unlock()
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return nil, "", false
	}
	return flow, uid, true
}

// GET /user/checkout
func (m *Manager) State(c *gin.Context) {
	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	summary, err := flow.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   flow.State(),
		"summary": summary,
		"cod_fee": checkout.CODFee,
	})
}

// PUT /user/checkout/address
func (m *Manager) UpdateAddress(c *gin.Context) {
	var addr checkout.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := flow.SetAddress(addr); err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.State())
}

// POST /user/checkout/next
func (m *Manager) Next(c *gin.Context) {
	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := flow.Next(c.Request.Context()); err != nil {
		if errors.Is(err, checkout.ErrAddressIncomplete) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          checkout.ErrAddressIncomplete.Error(),
				"missing_fields": flow.Address().MissingFields(),
			})
			return
		}
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.State())
}

// POST /user/checkout/back
func (m *Manager) Back(c *gin.Context) {
	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := flow.Back(); err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.State())
}

// PUT /user/checkout/payment-method
func (m *Manager) SelectMethod(c *gin.Context) {
	var req struct {
		Method checkout.Method `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := flow.SelectMethod(req.Method); err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.State())
}

// POST /user/checkout/cod-modal
func (m *Manager) CODModal(c *gin.Context) {
	var req struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, _, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Open {
		if err := flow.OpenCODModal(); err != nil {
			respondFlowError(c, err)
			return
		}
	} else {
		flow.CloseCODModal()
	}
	c.JSON(http.StatusOK, flow.State())
}

// POST /user/checkout/confirm — the UPI confirmation for whichever
// widget is active: the order-total one, or the COD fee one when the
// modal is open.
func (m *Manager) Confirm(c *gin.Context) {
	var req struct {
		Provider  checkout.Provider `json:"provider" binding:"required"`
		Reference string            `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, uid, ok := m.flow(c)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if flow.Method() == checkout.MethodCOD {
		err = flow.ConfirmCODFee(c.Request.Context(), req.Provider, req.Reference)
	} else {
		err = flow.ConfirmUPI(c.Request.Context(), req.Provider, req.Reference)
	}
	if err != nil {
		respondFlowError(c, err)
		return
	}

	// Terminal: the steps are gone for this session. Drop the flow so
	// the next checkout starts a new instance.
	orderRef := flow.OrderRef()
	delete(m.flows, uid)

	var order models.Order
	if err := m.db.Preload("Items").Where("order_ref = ?", orderRef).First(&order).Error; err == nil {
		orderControllers.BroadcastOrderPlaced(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order placed successfully",
		"placed":    true,
		"order_ref": orderRef,
	})
}
