package order

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_PayableAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    string
		wantErr bool
	}{
		{"positive", 5000, "5000", false},
		{"fractional", 12.5, "12.5", false},
		{"zero", 0, "", true},
		{"negative", -10, "", true},
		{"nan", math.NaN(), "", true},
		{"infinite", math.Inf(1), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{TotalAmount: tt.amount}
			got, err := o.PayableAmount()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestOrder_CheckPayable(t *testing.T) {
	assert.ErrorIs(t, (&Order{TotalAmount: 10, PaymentStatus: PaymentStatusPaid}).CheckPayable(), ErrAlreadyPaid)
	assert.ErrorIs(t, (&Order{TotalAmount: 10, PaymentStatus: PaymentStatusRefunded}).CheckPayable(), ErrAlreadyPaid)
	assert.ErrorIs(t, (&Order{TotalAmount: 0, PaymentStatus: PaymentStatusPending}).CheckPayable(), ErrInvalidAmount)
	assert.NoError(t, (&Order{TotalAmount: 10, PaymentStatus: PaymentStatusFailed}).CheckPayable())
}

func TestOrder_Helpers(t *testing.T) {
	o := &Order{ID: "o1", UserID: "u1", Currency: " xaf "}
	assert.True(t, o.OwnedBy("u1"))
	assert.False(t, o.OwnedBy("u2"))
	assert.False(t, (&Order{}).OwnedBy(""))
	assert.Equal(t, "XAF", o.CurrencyCode())
	assert.Equal(t, "XAF", (&Order{}).CurrencyCode())
	assert.Equal(t, "o1", o.DisplayReference())
	o.OrderNumber = "CMD-001"
	assert.Equal(t, "CMD-001", o.DisplayReference())
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.True(t, PaymentStatusPaid.IsTerminal())
	assert.True(t, PaymentStatusRefunded.IsTerminal())
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.False(t, PaymentStatusFailed.IsTerminal())
}
