package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "intro.md", `---
title: Welcome
sidebar_position: 1
---

Hello.
`)
	writeFile(t, dir, "guides/01-setup.md", "# Setting Up\n\nInstall things.\n")
	writeFile(t, dir, "guides/02-deploy.md", "No heading at all.\n")
	writeFile(t, dir, "03-api/ref.md", "# API Reference\n")

	loader := NewLoader(dir, nil)
	docs, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, docs, 4)

	byID := make(map[string]Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	intro, ok := byID["intro"]
	require.True(t, ok, "ids: %v", byID)
	assert.Equal(t, "Welcome", intro.Title, "front matter title wins")
	require.NotNil(t, intro.SidebarPosition)
	assert.Equal(t, float64(1), *intro.SidebarPosition)
	assert.Equal(t, ".", intro.Dir)
	assert.Equal(t, "/intro", intro.Slug)

	setup, ok := byID["guides/setup"]
	require.True(t, ok, "ids: %v", byID)
	assert.Equal(t, "Setting Up", setup.Title, "first heading wins without front matter")
	require.NotNil(t, setup.SidebarPosition, "filename prefix becomes the position")
	assert.Equal(t, float64(1), *setup.SidebarPosition)
	assert.Equal(t, "guides/01-setup.md", setup.Path)
	assert.Equal(t, "guides", setup.Dir)

	deploy, ok := byID["guides/deploy"]
	require.True(t, ok, "ids: %v", byID)
	assert.Equal(t, "deploy", deploy.Title, "stripped filename is the last resort")

	ref, ok := byID["api/ref"]
	require.True(t, ok, "directory prefixes are stripped from ids: %v", byID)
	assert.Equal(t, "03-api", ref.Dir, "Dir keeps the raw storage directory")
	assert.Nil(t, ref.SidebarPosition)
}

func TestLoadAllFrontMatterOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guides/05-install.md", `---
id: installation
slug: /install
sidebar_label: Install
sidebar_position: 2
---

# Installing
`)

	loader := NewLoader(dir, nil)
	docs, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "guides/installation", doc.ID, "front matter id replaces the filename part only")
	assert.Equal(t, "/install", doc.Slug)
	assert.Equal(t, "Install", doc.SidebarLabel)
	require.NotNil(t, doc.SidebarPosition)
	assert.Equal(t, float64(2), *doc.SidebarPosition, "front matter position beats the filename prefix")
}

func TestLoadAllDraft(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wip.md", "---\ndraft: true\n---\n# WIP\n")

	loader := NewLoader(dir, nil)
	docs, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].Draft)
}

func TestLoadAllDuplicateID(t *testing.T) {
	dir := t.TempDir()

	// Both derive the id "guides/setup" once prefixes are stripped.
	writeFile(t, dir, "guides/01-setup.md", "# One\n")
	writeFile(t, dir, "guides/setup.md", "# Two\n")

	loader := NewLoader(dir, nil)
	_, err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate document id")
	assert.Contains(t, err.Error(), "guides/setup")
}

func TestLoadAllInvalidFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.md", "---\nsidebar_position: soon\n---\n# Broken\n")

	loader := NewLoader(dir, nil)
	_, err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")

	var fmErr *FrontMatterError
	require.ErrorAs(t, err, &fmErr)
	assert.Equal(t, "broken.md", fmErr.Path)
}

func TestStripPathPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "root stays root", input: ".", want: "."},
		{name: "single segment", input: "02-guides", want: "guides"},
		{name: "every segment stripped", input: "02-guides/01-install", want: "guides/install"},
		{name: "unprefixed segments unchanged", input: "guides/advanced", want: "guides/advanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripPathPrefixes(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
