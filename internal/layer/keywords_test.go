package layer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.keywords")
	content := "category: hazard\nsubcategory: flood\nunit: m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, "hazard", kw.Get("category"))
	assert.Equal(t, "flood", kw.Get("subcategory"))
	assert.Equal(t, "", kw.Get("missing"))
}

func TestLoadKeywords_MissingFile(t *testing.T) {
	kw, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.keywords"))
	require.NoError(t, err)
	assert.Empty(t, kw)
}

func TestLoadKeywords_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.keywords")
	require.NoError(t, os.WriteFile(path, []byte("category: [unclosed\n"), 0o644))

	_, err := LoadKeywords(path)
	assert.Error(t, err)
}

func TestKeywords_GetNil(t *testing.T) {
	var kw Keywords
	assert.Equal(t, "", kw.Get("anything"))
}
