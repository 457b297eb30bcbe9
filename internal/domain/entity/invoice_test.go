package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testItem(qty, price, rate, discount string) *entity.InvoiceItem {
	it := &entity.InvoiceItem{
		Quantity:  dec(qty),
		UnitPrice: dec(price),
		VATRate:   dec(rate),
		Discount:  dec(discount),
	}
	it.Recalculate()
	return it
}

func TestInvoiceItem_Recalculate(t *testing.T) {
	it := testItem("2", "50.00", "15.00", "0")

	// total = 2 × 50.00 − 0 = 100.00; vat = 100.00 × 15/100 = 15.00
	assert.True(t, it.Total.Equal(dec("100.00")), "total = %s", it.Total)
	assert.True(t, it.VATAmount.Equal(dec("15.00")), "vat = %s", it.VATAmount)
}

func TestInvoiceItem_RecalculateWithDiscount(t *testing.T) {
	it := testItem("3", "40.00", "5.00", "20.00")

	// total = 3 × 40.00 − 20.00 = 100.00; vat = 100.00 × 5/100 = 5.00
	assert.True(t, it.Total.Equal(dec("100.00")))
	assert.True(t, it.VATAmount.Equal(dec("5.00")))
}

func TestInvoiceItem_RecalculateIsIdempotent(t *testing.T) {
	it := testItem("7", "13.37", "15.00", "1.50")
	total, vat := it.Total, it.VATAmount

	for i := 0; i < 10; i++ {
		it.Recalculate()
	}

	assert.True(t, it.Total.Equal(total), "repeated saves must not drift the total")
	assert.True(t, it.VATAmount.Equal(vat), "repeated saves must not drift the VAT amount")
}

func TestInvoice_CalculateTotals(t *testing.T) {
	inv := &entity.Invoice{Discount: dec("10.00")}
	items := []*entity.InvoiceItem{
		testItem("2", "50.00", "15.00", "0"),  // 100.00 + 15.00
		testItem("1", "200.00", "15.00", "0"), // 200.00 + 30.00
	}

	inv.CalculateTotals(items)

	assert.True(t, inv.Subtotal.Equal(dec("300.00")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.VATAmount.Equal(dec("45.00")), "vat = %s", inv.VATAmount)
	assert.True(t, inv.Total.Equal(dec("335.00")), "total = %s", inv.Total)

	// total == subtotal + vat − discount, exactly.
	assert.True(t, inv.Total.Equal(inv.Subtotal.Add(inv.VATAmount).Sub(inv.Discount)))
}

func TestInvoice_CalculateTotalsIdempotent(t *testing.T) {
	inv := &entity.Invoice{Discount: dec("3.33")}
	items := []*entity.InvoiceItem{
		testItem("1.5", "19.99", "15.00", "0.01"),
		testItem("0.25", "1234.56", "5.00", "0"),
	}

	inv.CalculateTotals(items)
	subtotal, vat, total := inv.Subtotal, inv.VATAmount, inv.Total

	inv.CalculateTotals(items)

	assert.True(t, inv.Subtotal.Equal(subtotal))
	assert.True(t, inv.VATAmount.Equal(vat))
	assert.True(t, inv.Total.Equal(total))
}

func TestInvoice_CalculateTotalsEmpty(t *testing.T) {
	inv := &entity.Invoice{Discount: decimal.Zero}
	inv.CalculateTotals(nil)

	assert.True(t, inv.Total.IsZero())
	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.VATAmount.IsZero())
}

func TestInvoice_Transitions(t *testing.T) {
	cases := []struct {
		from    entity.Status
		to      entity.Status
		allowed bool
	}{
		{entity.StatusDraft, entity.StatusSubmitted, true},
		{entity.StatusDraft, entity.StatusApproved, false},
		{entity.StatusDraft, entity.StatusCancelled, false},
		{entity.StatusSubmitted, entity.StatusApproved, true},
		{entity.StatusSubmitted, entity.StatusRejected, true},
		{entity.StatusSubmitted, entity.StatusCancelled, true},
		{entity.StatusApproved, entity.StatusCancelled, true},
		{entity.StatusApproved, entity.StatusSubmitted, false},
		{entity.StatusRejected, entity.StatusSubmitted, false},
		{entity.StatusRejected, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusSubmitted, false},
		{entity.StatusCancelled, entity.StatusApproved, false},
	}

	for _, tc := range cases {
		inv := &entity.Invoice{Status: tc.from}
		err := inv.Transition(tc.to)
		if tc.allowed {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, inv.Status)
		} else {
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, inv.Status, "a rejected transition must not mutate the invoice")
		}
	}
}

func TestInvoice_QRTimestamp(t *testing.T) {
	inv := &entity.Invoice{
		IssueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IssueTime: "10:00:00",
	}
	assert.Equal(t, "2024-01-01T10:00:00", inv.QRTimestamp())
}
