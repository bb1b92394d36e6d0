package deal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/de-tools/deal-atlas/pkg/services/registry"
)

// ControllerFactory creates a controller reading profiles from profilesFile.
type ControllerFactory func(profilesFile string) (Controller, error)

// NewControllerFromFile loads profiles from profilesFile. An empty path falls
// back to $HOME/.dealatlascfg, which may be absent; an explicit path must exist.
func NewControllerFromFile(profilesFile string) (Controller, error) {
	path := profilesFile
	if path == "" {
		path = registry.DefaultPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return NewController(nil), nil
		}
	}

	profiles, err := registry.NewProfileRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile registry: %w", err)
	}
	return NewController(profiles), nil
}
