package sidebar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMetadataFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	metaPath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(metaPath, []byte(content), 0644))
	return metaPath
}

func TestLoadCategoryMetadataAbsent(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		meta, err := LoadCategoryMetadata(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, meta)
	})

	t.Run("directory does not exist", func(t *testing.T) {
		meta, err := LoadCategoryMetadata(filepath.Join(t.TempDir(), "missing"))
		require.NoError(t, err)
		assert.Nil(t, meta)
	})
}

func TestLoadCategoryMetadataFormats(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
	}{
		{
			name:     "json",
			fileName: "_category_.json",
			content:  `{"label": "Guides", "position": 2, "collapsed": false}`,
		},
		{
			name:     "yml",
			fileName: "_category_.yml",
			content:  "label: Guides\nposition: 2\ncollapsed: false\n",
		},
		{
			name:     "yaml",
			fileName: "_category_.yaml",
			content:  "label: Guides\nposition: 2\ncollapsed: false\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeMetadataFile(t, dir, tt.fileName, tt.content)

			meta, err := LoadCategoryMetadata(dir)
			require.NoError(t, err)
			require.NotNil(t, meta)

			require.NotNil(t, meta.Label)
			assert.Equal(t, "Guides", *meta.Label)
			require.NotNil(t, meta.Position)
			assert.Equal(t, float64(2), *meta.Position)
			require.NotNil(t, meta.Collapsed)
			assert.False(t, *meta.Collapsed)
		})
	}
}

func TestLoadCategoryMetadataPartialFields(t *testing.T) {
	dir := t.TempDir()
	writeMetadataFile(t, dir, "_category_.json", `{"position": 2.5}`)

	meta, err := LoadCategoryMetadata(dir)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Nil(t, meta.Label)
	assert.Nil(t, meta.Collapsed)
	require.NotNil(t, meta.Position)
	assert.Equal(t, 2.5, *meta.Position)
}

func TestLoadCategoryMetadataPrecedence(t *testing.T) {
	t.Run("json beats yml and yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeMetadataFile(t, dir, "_category_.json", `{"label": "From JSON"}`)
		writeMetadataFile(t, dir, "_category_.yml", "label: From YML\n")
		writeMetadataFile(t, dir, "_category_.yaml", "label: From YAML\n")

		meta, err := LoadCategoryMetadata(dir)
		require.NoError(t, err)
		require.NotNil(t, meta)
		require.NotNil(t, meta.Label)
		assert.Equal(t, "From JSON", *meta.Label)
	})

	t.Run("yml beats yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeMetadataFile(t, dir, "_category_.yml", "label: From YML\n")
		writeMetadataFile(t, dir, "_category_.yaml", "label: From YAML\n")

		meta, err := LoadCategoryMetadata(dir)
		require.NoError(t, err)
		require.NotNil(t, meta)
		require.NotNil(t, meta.Label)
		assert.Equal(t, "From YML", *meta.Label)
	})

	t.Run("variants are never merged", func(t *testing.T) {
		dir := t.TempDir()
		writeMetadataFile(t, dir, "_category_.json", `{"label": "From JSON"}`)
		writeMetadataFile(t, dir, "_category_.yml", "position: 7\n")

		meta, err := LoadCategoryMetadata(dir)
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Nil(t, meta.Position, "position from the losing variant must not leak in")
	})
}

func TestLoadCategoryMetadataInvalid(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
	}{
		{
			name:     "json position with wrong type",
			fileName: "_category_.json",
			content:  `{"position": "first"}`,
		},
		{
			name:     "json syntax error",
			fileName: "_category_.json",
			content:  `{"label": `,
		},
		{
			name:     "yaml collapsed with wrong type",
			fileName: "_category_.yml",
			content:  "collapsed: sometimes\n",
		},
		{
			name:     "yaml label with wrong type",
			fileName: "_category_.yaml",
			content:  "label: [a, b]\n",
		},
		{
			name:     "empty label",
			fileName: "_category_.json",
			content:  `{"label": ""}`,
		},
		{
			name:     "non-finite position",
			fileName: "_category_.yml",
			content:  "position: .inf\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			wantPath := writeMetadataFile(t, dir, tt.fileName, tt.content)

			meta, err := LoadCategoryMetadata(dir)
			require.Error(t, err)
			assert.Nil(t, meta)

			var metaErr *MetadataError
			require.True(t, errors.As(err, &metaErr), "expected MetadataError, got %T", err)
			assert.Equal(t, wantPath, metaErr.Path)
			assert.Contains(t, err.Error(), wantPath)
			assert.True(t, errors.Is(err, ErrInvalidMetadata))
		})
	}
}

func TestLoadCategoryMetadataUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeMetadataFile(t, dir, "_category_.json", `{"label": "Guides", "link": {"type": "generated-index"}}`)

	meta, err := LoadCategoryMetadata(dir)
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.NotNil(t, meta.Label)
	assert.Equal(t, "Guides", *meta.Label)
}
