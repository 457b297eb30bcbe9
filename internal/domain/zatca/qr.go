// Package zatca: compliance QR payload per the ZATCA e-invoicing regulation.
// Encoding: five TLV (tag-length-value) records, tags 1-5, concatenated and
// base64-encoded. Deterministic and pure.

package zatca

import (
	"encoding/base64"
	"fmt"
)

// TLV tags in the order mandated by ZATCA.
const (
	TagSellerName = 0x01
	TagVATNumber  = 0x02
	TagTimestamp  = 0x03
	TagTotal      = 0x04
	TagVATAmount  = 0x05
)

// maxValueLen is the largest value a single length byte can describe. The
// 1-byte length prefix is fixed by the ZATCA TLV specification; values above
// it are rejected rather than silently truncated.
const maxValueLen = 255

// QRFields are the five values carried by the compliance QR, in tag order.
type QRFields struct {
	SellerName string // tag 1
	VATNumber  string // tag 2
	Timestamp  string // tag 3, issue date + "T" + issue time
	Total      string // tag 4, total with VAT, decimal string
	VATAmount  string // tag 5, decimal string
}

// EncodeQR builds the base64 TLV payload for the given fields.
// Each record is one tag byte, one length byte holding the UTF-8 byte length
// of the value, then the value bytes. Any field whose UTF-8 encoding exceeds
// 255 bytes fails; callers treat the error as "QR unavailable", never fatal.
func EncodeQR(f QRFields) (string, error) {
	records := []struct {
		tag   byte
		value string
	}{
		{TagSellerName, f.SellerName},
		{TagVATNumber, f.VATNumber},
		{TagTimestamp, f.Timestamp},
		{TagTotal, f.Total},
		{TagVATAmount, f.VATAmount},
	}

	var tlv []byte
	for _, r := range records {
		b := []byte(r.value)
		if len(b) > maxValueLen {
			return "", fmt.Errorf("zatca: TLV tag %d value is %d bytes, max %d", r.tag, len(b), maxValueLen)
		}
		tlv = append(tlv, r.tag, byte(len(b)))
		tlv = append(tlv, b...)
	}

	return base64.StdEncoding.EncodeToString(tlv), nil
}
