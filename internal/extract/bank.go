package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dlifeofjay/payslip/constants"
)

var titleCaser = cases.Title(language.English)

// NormalizeBankName canonicalizes a free-form bank name to one of the
// known bank identifiers. Matching is exact string equality against the
// alias table after trim+lowercase; unknown institutions pass through
// title-cased rather than being dropped. Empty input stays empty.
//
// Canonical identifiers themselves match case-insensitively, so
// normalization is idempotent.
func NormalizeBankName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	for _, canonical := range constants.CanonicalBanks {
		if name == strings.ToLower(canonical) {
			return canonical
		}
		for _, alias := range constants.BankAliases[canonical] {
			if name == alias {
				return canonical
			}
		}
	}
	return titleCaser.String(name)
}
