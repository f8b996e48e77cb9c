package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountRules is the magnitude-correction policy for OCR'd amounts. Scans
// routinely drop the thousands of a salary figure ("45" for 45,000), so
// values under the cutoff are scaled up. The numbers are a tunable policy,
// not a business rule.
type AmountRules struct {
	MagnitudeCutoff decimal.Decimal
	Multiplier      decimal.Decimal
}

func DefaultAmountRules() AmountRules {
	return AmountRules{
		MagnitudeCutoff: decimal.NewFromInt(100),
		Multiplier:      decimal.NewFromInt(1000),
	}
}

// NormalizeAmount cleans a currency-formatted string and reformats it with
// thousands separators and two decimal places, applying the magnitude
// policy. The second return reports whether the value actually parsed; on
// failure the cleaned input is passed through unchanged so a reviewer sees
// what the OCR saw.
func (r AmountRules) NormalizeAmount(val string) (string, bool) {
	cleaned := strings.ReplaceAll(val, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "₦", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", false
	}

	num, err := decimal.NewFromString(cleaned)
	if err != nil {
		return cleaned, false
	}
	if num.LessThan(r.MagnitudeCutoff) {
		num = num.Mul(r.Multiplier)
	}
	return formatThousands(num), true
}

// formatThousands renders a decimal as #,###.## with exactly two decimals.
func formatThousands(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
