package schema

import (
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads the input document at path. The format follows the file
// extension (yaml, yml, json, toml, ...).
func Load(path string, defaults Defaults) (*Input, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, &domain.MalformedInputError{Path: path, Err: err}
	}

	return New(path, v.AllSettings(), defaults)
}

// Decode reads a YAML or JSON input document from r.
func Decode(source string, r io.Reader, defaults Defaults) (*Input, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty document")
		}
		return nil, &domain.MalformedInputError{Path: source, Err: err}
	}

	return New(source, doc, defaults)
}
