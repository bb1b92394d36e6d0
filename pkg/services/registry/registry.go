package registry

import "github.com/de-tools/deal-atlas/pkg/services/schema"

// ProfileRegistry exposes named assumption profiles. A profile supplies
// defaults for keys an input document leaves out.
type ProfileRegistry interface {
	GetProfiles() ([]string, error)
	GetDefaults(profile string) (schema.Defaults, error)
}
