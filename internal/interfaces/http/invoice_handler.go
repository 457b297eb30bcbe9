package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/billing"
	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
)

// InvoiceHandler handles invoice requests: CRUD, ZATCA operations and exports.
type InvoiceHandler struct {
	invoiceUC *billing.InvoiceUseCase
	zatcaUC   *billing.ZATCAUseCase
	exportUC  *billing.ExportUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(invoiceUC *billing.InvoiceUseCase, zatcaUC *billing.ZATCAUseCase, exportUC *billing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC, zatcaUC: zatcaUC, exportUC: exportUC}
}

// Create creates a draft invoice with its line items.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	invoice, err := h.invoiceUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List returns invoices newest first, optionally filtered by ?status=.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	invoices, err := h.invoiceUC.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoices)
}

// GetByID returns the full invoice with items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.invoiceUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Update replaces a draft invoice.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	invoice, err := h.invoiceUC.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Delete removes a draft invoice.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoiceUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit sends a draft invoice to ZATCA.
// POST /api/invoices/:id/submit
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	result, err := h.zatcaUC.SubmitInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(result)
}

// Status queries ZATCA for the invoice's authority status.
// GET /api/invoices/:id/status
func (h *InvoiceHandler) Status(c *fiber.Ctx) error {
	result, err := h.zatcaUC.CheckStatus(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(result)
}

// Cancel cancels a submitted or approved invoice at ZATCA.
// POST /api/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelInvoiceRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	result, err := h.zatcaUC.CancelInvoice(c.Context(), c.Params("id"), in.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(result)
}

// Logs returns the invoice's authority audit trail.
// GET /api/invoices/:id/logs
func (h *InvoiceHandler) Logs(c *fiber.Ctx) error {
	logs, err := h.invoiceUC.Logs(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(logs)
}

// Print renders the invoice as a PDF.
// GET /api/invoices/:id/print
func (h *InvoiceHandler) Print(c *fiber.Ctx) error {
	pdfBytes, err := h.exportUC.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="invoice.pdf"`)
	return c.Send(pdfBytes)
}

// XML returns the UBL 2.1 document and its invoice hash.
// GET /api/invoices/:id/xml
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	result, err := h.exportUC.XML(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(result)
}
