package schema

import (
	"fmt"
	"maps"
	"strings"
)

// Defaults maps qualified keys ("SECTION.KEY") to the value used when a
// document omits that key.
type Defaults map[string]any

// QualifiedKey joins a section and key the way Defaults and errors spell them.
func QualifiedKey(section, key string) string {
	return strings.ToUpper(section) + "." + strings.ToUpper(key)
}

// SplitKey is the inverse of QualifiedKey.
func SplitKey(qualified string) (section, key string, err error) {
	section, key, ok := strings.Cut(qualified, ".")
	if !ok || section == "" || key == "" {
		return "", "", fmt.Errorf("key %q is not of the form SECTION.KEY", qualified)
	}
	return strings.ToUpper(section), strings.ToUpper(key), nil
}

// BuiltinDefaults returns the optional keys every run may omit.
func BuiltinDefaults() Defaults {
	return Defaults{
		QualifiedKey(SectionProperty, "LINK"):               "",
		QualifiedKey(SectionProperty, "DESCRIPTION"):        "",
		QualifiedKey(SectionPurchase, "NOTARY_FEES"):        0,
		QualifiedKey(SectionPurchase, "AGENCY_FEES"):        0,
		QualifiedKey(SectionPurchase, "REGISTRATION_TAX"):   0,
		QualifiedKey(SectionIncome, "MONTHLY_OTHER_INCOME"): 0,
		QualifiedKey(SectionExpenses, "MONTHLY_INSURANCE"):  0,
	}
}

// Merge returns a copy of d overlaid with other; keys in other win.
func (d Defaults) Merge(other Defaults) Defaults {
	merged := d.clone()
	for k, v := range other {
		merged[strings.ToUpper(k)] = v
	}
	return merged
}

func (d Defaults) clone() Defaults {
	if d == nil {
		return Defaults{}
	}
	return maps.Clone(d)
}
