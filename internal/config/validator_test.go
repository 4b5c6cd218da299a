package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cargocraft/cli/internal/errors"
)

func TestValidateDefaultConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(DefaultConfig()))
	assert.NoError(t, v.Validate(&Config{}))
}

func TestValidateRejectsBadValues(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(&Config{Edition: "2019", Baseline: []string{"serde --dev --build"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "edition")
	assert.Contains(t, fields, "baseline.0")
}

func TestValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("valid file", func(t *testing.T) {
		path := writeConfig(t, `
version: 0.1.0
edition: 2021
toolchain: stable
log:
  timestamps: false
`)
		assert.NoError(t, v.ValidateFile(path))
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "kubeconfig: ~/.kube/config\n")
		err := v.ValidateFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kubeconfig")
	})

	t.Run("bad version", func(t *testing.T) {
		path := writeConfig(t, "version: latest\n")
		err := v.ValidateFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "version")
	})

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	})
}
