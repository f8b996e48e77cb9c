package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	rules := DefaultAmountRules()

	tests := []struct {
		name       string
		in         string
		want       string
		normalized bool
	}{
		{"truncated thousands scaled up", "45", "45,000.00", true},
		{"plain amount", "1500", "1,500.00", true},
		{"currency glyph and separator stripped", "₦2,300", "2,300.00", true},
		{"decimal kept", "45000.50", "45,000.50", true},
		{"just under cutoff", "99.99", "99,990.00", true},
		{"at cutoff not scaled", "100", "100.00", true},
		{"garbage passes through", "abc", "abc", false},
		{"empty stays empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"large amount grouped", "1234567.89", "1,234,567.89", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rules.NormalizeAmount(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.normalized, ok)
		})
	}
}

func TestNormalizeAmountCustomPolicy(t *testing.T) {
	rules := AmountRules{
		MagnitudeCutoff: decimal.NewFromInt(10),
		Multiplier:      decimal.NewFromInt(100),
	}
	got, ok := rules.NormalizeAmount("5")
	assert.True(t, ok)
	assert.Equal(t, "500.00", got)

	got, ok = rules.NormalizeAmount("45")
	assert.True(t, ok)
	assert.Equal(t, "45.00", got)
}
