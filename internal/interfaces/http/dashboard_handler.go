package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/billing"
)

// DashboardHandler serves the invoice counters overview.
type DashboardHandler struct {
	uc *billing.InvoiceUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *billing.InvoiceUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get returns invoice counts by status plus the most recent invoices.
// GET /api/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
