package validate

import (
	"strings"

	"github.com/openlessons/rteverify/pkg/component"
)

// CheckEncoding scans a fragment for byte sequences the character
// repair table would rewrite and returns the ones present, in table
// order. A non-empty result means the fragment still carries damage
// from the cp-1252/UTF-8 double-encoding era and repairing it would
// change the text.
//
// Identity rows of the table match undamaged text by construction and
// are skipped.
func CheckEncoding(raw string) []string {
	var found []string
	for _, m := range component.CharMappings {
		if m.Bad == m.Good {
			continue
		}
		if strings.Contains(raw, m.Bad) {
			found = append(found, m.Bad)
		}
	}
	return found
}
