package repository

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// ZATCALogRepository is the persistence port for the append-only audit log.
type ZATCALogRepository interface {
	// Create inserts the row with the outgoing payload, before the network
	// call is made.
	Create(log *entity.ZATCALog) error
	// Finalize attaches the response fields (response_data, status_code,
	// success, error_message) to an existing row. It is the only permitted
	// mutation and happens at most once per row.
	Finalize(log *entity.ZATCALog) error
	ListByInvoiceID(invoiceID string) ([]*entity.ZATCALog, error)
}
