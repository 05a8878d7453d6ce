// Package toml loads negarit configuration files using go-toml.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/negarit"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML file at path over the defaults and validates
// the result. An empty path returns the defaults.
func LoadConfig(path string) (*negarit.Config, error) {
	cfg := negarit.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, negarit.Errorf(negarit.EINVALID, "config file not found: %s", path)
		}
		return nil, err
	}

	if err := DecodeConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeConfig decodes TOML data into cfg, leaving fields the data does not
// mention untouched. Unknown keys are rejected.
func DecodeConfig(data []byte, cfg *negarit.Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return negarit.Errorf(negarit.EINVALID, "unknown configuration keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return negarit.Errorf(negarit.EINVALID, "invalid configuration at line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return negarit.Errorf(negarit.EINVALID, "invalid configuration: %v", err)
	}
	return nil
}

// EncodeConfig renders cfg as TOML.
func EncodeConfig(cfg *negarit.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
