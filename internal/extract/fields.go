package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Field identifiers for the five extraction targets.
const (
	FieldEmployeeName  = "Employee Name"
	FieldAccountNumber = "Account Number"
	FieldBank          = "Bank"
	FieldNetPay        = "Net Pay"
	FieldPayDate       = "Pay Date"
)

// Pattern describes one label-anchored extraction rule: any of the label
// phrases, up to a few filler characters, then a capture of the expected
// value shape. Labels may be regex fragments.
type Pattern struct {
	Field  string
	Labels []string
	Filler string
	Value  string

	// TruncateAtLabel cuts the capture at the next known label phrase.
	// Needed for letter/space value shapes, which would otherwise swallow
	// the following label ("Jane Doe Account Number").
	TruncateAtLabel bool
}

// DefaultPatterns is the fixed extraction rule set. Order is the canonical
// field order of an extracted record.
var DefaultPatterns = []Pattern{
	{
		Field:           FieldEmployeeName,
		Labels:          []string{"employee name", "name"},
		Filler:          `[^\w]{0,5}`,
		Value:           `[A-Za-z .'-]+`,
		TruncateAtLabel: true,
	},
	{
		Field:  FieldAccountNumber,
		Labels: []string{"acct no", "account number", "acc no"},
		Filler: `[^\d]{0,5}`,
		Value:  `[\d]{6,}`,
	},
	{
		Field:           FieldBank,
		Labels:          []string{"bank name", "bank"},
		Filler:          `[^\w]{0,5}`,
		Value:           `[A-Za-z &]+`,
		TruncateAtLabel: true,
	},
	{
		Field:  FieldNetPay,
		Labels: []string{`net\s*pay`, "amount paid", "salary", "gross"},
		Filler: `[^\d]{0,5}`,
		Value:  `[\d,\.]+`,
	},
	{
		Field:  FieldPayDate,
		Labels: []string{"date", "pay date", "payment date"},
		Filler: `[^\d]{0,5}`,
		Value:  `[\d/\-.]+`,
	},
}

// Fields holds the extraction result; absent fields are empty strings.
type Fields struct {
	EmployeeName  string
	AccountNumber string
	Bank          string
	NetPay        string
	PayDate       string
}

// FieldExtractor applies the pattern table to recognized text. A missing
// match is a normal outcome on noisy OCR input, never an error.
type FieldExtractor struct {
	patterns []Pattern
	compiled map[string]*regexp.Regexp
	stops    map[string]*regexp.Regexp
	amounts  AmountRules
}

func NewFieldExtractor() *FieldExtractor {
	return NewFieldExtractorWith(DefaultPatterns, DefaultAmountRules())
}

func NewFieldExtractorWith(patterns []Pattern, amounts AmountRules) *FieldExtractor {
	compiled := make(map[string]*regexp.Regexp, len(patterns))
	stops := make(map[string]*regexp.Regexp)
	for _, p := range patterns {
		compiled[p.Field] = regexp.MustCompile(`(?i)(?:` + strings.Join(p.Labels, "|") + `)` + p.Filler + `(` + p.Value + `)`)
		if p.TruncateAtLabel {
			stops[p.Field] = stopRegexp(patterns, p.Field)
		}
	}
	return &FieldExtractor{
		patterns: patterns,
		compiled: compiled,
		stops:    stops,
		amounts:  amounts,
	}
}

// stopRegexp matches any other field's label phrase at a word boundary.
// The field's own labels are excluded so a value like "First Bank Nigeria"
// is not cut at its own keyword before alias lookup. Longer phrases sort
// first so "employee name" wins over "name" at the same position.
func stopRegexp(patterns []Pattern, exceptField string) *regexp.Regexp {
	var labels []string
	for _, p := range patterns {
		if p.Field == exceptField {
			continue
		}
		labels = append(labels, p.Labels...)
	}
	sort.SliceStable(labels, func(i, j int) bool { return len(labels[i]) > len(labels[j]) })
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(labels, "|") + `)\b`)
}

// Extract recovers the five fields from one page of recognized text. Only
// the first match per field in document order is used; Net Pay and Bank go
// through their normalizers, everything else is trimmed only.
func (e *FieldExtractor) Extract(text string) Fields {
	raw := make(map[string]string, len(e.patterns))
	for _, p := range e.patterns {
		m := e.compiled[p.Field].FindStringSubmatch(text)
		if m == nil {
			raw[p.Field] = ""
			continue
		}
		val := m[1]
		if stop := e.stops[p.Field]; stop != nil {
			if loc := stop.FindStringIndex(val); loc != nil {
				val = val[:loc[0]]
			}
		}
		raw[p.Field] = strings.TrimSpace(val)
	}

	netPay := raw[FieldNetPay]
	if netPay != "" {
		netPay, _ = e.amounts.NormalizeAmount(netPay)
	}

	return Fields{
		EmployeeName:  raw[FieldEmployeeName],
		AccountNumber: raw[FieldAccountNumber],
		Bank:          NormalizeBankName(raw[FieldBank]),
		NetPay:        netPay,
		PayDate:       raw[FieldPayDate],
	}
}
