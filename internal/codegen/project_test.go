package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "model")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0644))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "model")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0644))

	_, err := FindConfigFile(nested, "serialx.yaml")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	path := filepath.Join(root, "serialx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0644))

	got, err := FindConfigFile(nested, "serialx.yaml")
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
