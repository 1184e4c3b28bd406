package version

import (
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name            string
		engineVersion   string
		requiredVersion string
		expectError     bool
		errorContains   string
	}{
		{
			name:            "exact match",
			engineVersion:   "0.3.0",
			requiredVersion: "0.3.0",
		},
		{
			name:            "engine patch higher",
			engineVersion:   "0.3.1",
			requiredVersion: "0.3.0",
		},
		{
			name:            "required patch higher",
			engineVersion:   "0.3.0",
			requiredVersion: "0.3.4",
		},
		{
			name:            "engine minor higher",
			engineVersion:   "0.4.0",
			requiredVersion: "0.3.0",
		},
		{
			name:            "engine minor lower",
			engineVersion:   "0.2.0",
			requiredVersion: "0.3.0",
			expectError:     true,
			errorContains:   "minor version mismatch",
		},
		{
			name:            "major version differs",
			engineVersion:   "1.0.0",
			requiredVersion: "0.3.0",
			expectError:     true,
			errorContains:   "major version mismatch",
		},
		{
			name:            "engine is main",
			engineVersion:   "main",
			requiredVersion: "9.9.9",
		},
		{
			name:            "required is main",
			engineVersion:   "0.3.0",
			requiredVersion: "main",
		},
		{
			name:            "required is empty",
			engineVersion:   "0.3.0",
			requiredVersion: "",
		},
		{
			name:            "v prefix on both",
			engineVersion:   "v0.3.0",
			requiredVersion: "v0.3.0",
		},
		{
			name:            "prerelease version",
			engineVersion:   "0.3.0-alpha",
			requiredVersion: "0.3.0",
		},
		{
			name:            "invalid engine version",
			engineVersion:   "not-a-version",
			requiredVersion: "0.3.0",
			expectError:     true,
			errorContains:   "invalid engine version",
		},
		{
			name:            "invalid required version",
			engineVersion:   "0.3.0",
			requiredVersion: "not-a-version",
			expectError:     true,
			errorContains:   "invalid required version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.engineVersion, tt.requiredVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
	assert.NoError(t, CheckCompatibility(GetVersion(), GetVersion()))
}
