package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/deal-atlas/pkg/services/schema"
	"gopkg.in/ini.v1"
)

const defaultFileName = ".dealatlascfg"

// ErrProfileNotFound is returned for a profile the file does not define.
var ErrProfileNotFound = errors.New("not found")

// DefaultPath returns $HOME/.dealatlascfg.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultFileName
	}
	return filepath.Join(home, defaultFileName)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewProfileRegistry loads profiles from an INI file such as
//
//	[milano]
//	INCOME.VACANCY_RATE = 0.08
//	PURCHASE.NOTARY_FEES = 3000
func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetDefaults(profile string) (schema.Defaults, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s %w", profile, ErrProfileNotFound)
	}

	defaults := make(schema.Defaults, len(section.Keys()))
	for _, key := range section.Keys() {
		sectionName, keyName, err := schema.SplitKey(key.Name())
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", profile, err)
		}
		defaults[schema.QualifiedKey(sectionName, keyName)] = key.Value()
	}
	return defaults, nil
}
