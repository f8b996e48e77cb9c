package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlifeofjay/payslip/constants"
)

func TestNormalizeBankNameAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gtbank", "GTBank"},
		{"GT Bank", "GTBank"},
		{"guaranty trust bank", "GTBank"},
		{"united bank for africa", "UBA"},
		{"  UBA  ", "UBA"},
		{"first bank nigeria", "FirstBank"},
		{"fbn", "FirstBank"},
		{"zenith", "ZenithBank"},
		{"stanbic", "Stanbic IBTC"},
		{"eco bank", "EcoBank"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBankName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeBankNameIdempotent(t *testing.T) {
	for _, canonical := range constants.CanonicalBanks {
		assert.Equal(t, canonical, NormalizeBankName(canonical))
	}
}

func TestNormalizeBankNameUnknownTitleCased(t *testing.T) {
	assert.Equal(t, "Polaris Bank", NormalizeBankName("polaris bank"))
	assert.Equal(t, "Keystone", NormalizeBankName("KEYSTONE"))
}

func TestNormalizeBankNameNoSubstringMatch(t *testing.T) {
	// "gtbank plc" is not an exact alias and must pass through untouched
	// apart from capitalization.
	assert.Equal(t, "Gtbank Plc", NormalizeBankName("gtbank plc"))
}

func TestNormalizeBankNameEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeBankName(""))
	assert.Equal(t, "", NormalizeBankName("   "))
}
