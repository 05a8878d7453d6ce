package negarit_test

import (
	"testing"

	"github.com/fwojciec/negarit"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := negarit.DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "FEDERAL NEGARIT GAZETTE", cfg.Clean.HeaderMarker)
	assert.Equal(t, 3, cfg.Clean.MinLineLength)
	assert.Equal(t, "gA", cfg.Clean.NoiseToken)
	assert.Equal(t, "serialized_files", cfg.Paths.Output)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*negarit.Config)
	}{
		{"negative min line length", func(c *negarit.Config) { c.Clean.MinLineLength = -1 }},
		{"negative max section title", func(c *negarit.Config) { c.Extract.MaxSectionTitle = -1 }},
		{"empty source dir", func(c *negarit.Config) { c.Paths.Source = "" }},
		{"empty output dir", func(c *negarit.Config) { c.Paths.Output = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := negarit.DefaultConfig()
			tt.modify(cfg)

			assert.Equal(t, negarit.EINVALID, negarit.ErrorCode(cfg.Validate()))
		})
	}
}
