package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	base := t.TempDir()
	store := NewDiskStore(base)

	fh := fileHeader(t, "My Photo.PNG", pngBytes(2048))
	rel, err := store.Save(7, 42, fh)
	require.NoError(t, err)

	// path is owner/product scoped with a minted name
	assert.True(t, strings.HasPrefix(rel, filepath.Join("7", "42")+string(filepath.Separator)), rel)
	assert.NotContains(t, rel, "My Photo")
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(base, rel))
	require.NoError(t, err)
	assert.Len(t, data, 2048)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.Join(base, rel))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	fh := fileHeader(t, "a.png", pngBytes(64))

	first, err := store.Save(1, 1, fh)
	require.NoError(t, err)
	second, err := store.Save(1, 1, fh)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
