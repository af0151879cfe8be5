package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MichaelBawol/EK-BOOKING/internal/domain"
	"github.com/MichaelBawol/EK-BOOKING/internal/service"
)

const defaultListLimit = 200

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /api/bookings
//
// Always answers 200: degraded storage or mail shows up as flags in the body,
// and even the defensive catch-all maps to a soft JSON error. A form submitter
// must never see a server error.
func (h *BookingHandler) Submit(c *gin.Context) {
	raw := map[string]any{}
	if body, err := io.ReadAll(c.Request.Body); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			// malformed bodies are treated as an empty submission
			raw = map[string]any{}
		}
	}

	res := h.svc.Submit(c.Request.Context(), raw)
	if !res.OK {
		c.JSON(http.StatusOK, gin.H{"ok": false, "reason": res.Reason, "detail": res.Detail})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"ref":    res.Ref,
		"stored": res.Stored,
		"email":  res.Email,
	})
}

// GET /api/bookings?limit=N  (behind AdminAuth)
func (h *BookingHandler) List(c *gin.Context) {
	limit := defaultListLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}

	items, marker := h.svc.List(c.Request.Context(), limit)
	if items == nil {
		items = []domain.Booking{}
	}
	if marker != "" {
		c.JSON(http.StatusOK, gin.H{"items": items, "storage": marker})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
