package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

func TestTransactionType_ReversalType(t *testing.T) {
	tests := []struct {
		name string
		in   domain.TransactionType
		want domain.TransactionType
	}{
		{
			name: "deposit reverses to deposit reversal",
			in:   domain.CashDeposit,
			want: domain.CashDepositReversal,
		},
		{
			name: "withdrawal reverses to withdrawal reversal",
			in:   domain.CashWithdrawal,
			want: domain.CashWithdrawalReversal,
		},
		{
			name: "transfer reverses to transfer reversal",
			in:   domain.FundTransfer,
			want: domain.FundTransferReversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ReversalType())
		})
	}
}

func TestTransactionType_IsReversal(t *testing.T) {
	assert.False(t, domain.CashDeposit.IsReversal())
	assert.False(t, domain.CashWithdrawal.IsReversal())
	assert.False(t, domain.FundTransfer.IsReversal())
	assert.True(t, domain.CashDepositReversal.IsReversal())
	assert.True(t, domain.CashWithdrawalReversal.IsReversal())
	assert.True(t, domain.FundTransferReversal.IsReversal())
}
