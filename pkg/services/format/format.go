// Package format renders derived values for reports.
package format

import (
	"fmt"
	"regexp"
)

const percentMultiplier = 100.0

var (
	internalMarker = regexp.MustCompile(`^_`)
	displayMarker  = regexp.MustCompile(`_FMT$`)
)

// Percent renders a ratio as "xx.xx%". Rounding happens here only; the ratio
// itself is never rounded.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*percentMultiplier)
}

// Credit prefixes an amount with "+".
func Credit(amount fmt.Stringer) string {
	return "+" + amount.String()
}

// Debit prefixes an amount with "-".
func Debit(amount fmt.Stringer) string {
	return "-" + amount.String()
}

// Label turns a raw field name into its report label: "_CAP_RATE_FMT" -> "CAP_RATE".
func Label(name string) string {
	name = internalMarker.ReplaceAllString(name, "")
	return displayMarker.ReplaceAllString(name, "")
}
