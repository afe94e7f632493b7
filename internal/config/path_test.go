package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("DRIVEORG_TEST_DIR", "/tmp/driveorg")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"tilde slash", "~/data/db.sqlite", filepath.Join(home, "data", "db.sqlite")},
		{"bare tilde", "~", home},
		{"env var", "$DRIVEORG_TEST_DIR/db.sqlite", "/tmp/driveorg/db.sqlite"},
		{"absolute untouched", "/var/lib/driveorg", "/var/lib/driveorg"},
		{"relative untouched", "data/db.sqlite", "data/db.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestDefaultDirs(t *testing.T) {
	assert.True(t, strings.HasSuffix(DataDir(), filepath.Join(".local", "share", "driveorg")))
	assert.True(t, strings.HasSuffix(ConfigDir(), filepath.Join(".config", "driveorg")))
}
