package cmd

import (
	"strings"
	"testing"
)

func TestCheckCommandSoundSite(t *testing.T) {
	_, configPath := writeTestSite(t)

	output, err := executeCommand("check", "--config", configPath)
	if err != nil {
		t.Fatalf("check should pass on a sound site: %v\noutput:\n%s", err, output)
	}

	for _, want := range []string{
		"✓ Configuration valid",
		"✓ Loaded 3 documents (0 drafts)",
		"✓ Category metadata valid",
		"Site is sound",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("check output missing %q:\n%s", want, output)
		}
	}
}

func TestCheckCommandBrokenFrontMatter(t *testing.T) {
	root, configPath := writeTestSite(t)
	writeSiteFile(t, root, "docs/bad.md", "---\ntitle: [unclosed\n---\n\n# Bad\n")

	output, err := executeCommand("check", "--config", configPath)
	if err == nil {
		t.Fatal("expected check to fail on broken front matter")
	}
	if !strings.Contains(err.Error(), "check failed with 1 problem(s)") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "✗ Failed to load documents") {
		t.Errorf("check output missing the content failure:\n%s", output)
	}
}

func TestCheckCommandBrokenCategoryMetadata(t *testing.T) {
	root, configPath := writeTestSite(t)
	writeSiteFile(t, root, "docs/guides/_category_.json", "{not json")

	output, err := executeCommand("check", "--config", configPath)
	if err == nil {
		t.Fatal("expected check to fail on unparseable category metadata")
	}
	if !strings.Contains(output, "✗ Category metadata has errors") {
		t.Errorf("check output missing the metadata failure:\n%s", output)
	}
	if !strings.Contains(output, "_category_.json") {
		t.Errorf("check output should name the broken file:\n%s", output)
	}
}

func TestCheckCommandMixedPrefixWarning(t *testing.T) {
	root, configPath := writeTestSite(t)
	writeSiteFile(t, root, "docs/guides/extras.md", "# Extras\n\nUnprefixed sibling.\n")

	output, err := executeCommand("check", "--config", configPath)
	if err != nil {
		t.Fatalf("mixed prefixes warn but should not fail the check: %v", err)
	}

	if !strings.Contains(output, "Mixed ordering in guides") {
		t.Errorf("expected a mixed-ordering warning for guides:\n%s", output)
	}
	if !strings.Contains(output, "extras.md") {
		t.Errorf("warning should name the unprefixed file:\n%s", output)
	}
	if !strings.Contains(output, "Site is sound") {
		t.Errorf("warnings alone should leave the site sound:\n%s", output)
	}
}

func TestCheckCommandDuplicateIDs(t *testing.T) {
	root, configPath := writeTestSite(t)
	writeSiteFile(t, root, "docs/a.md", "---\nid: same\ntitle: A\n---\n\nBody.\n")
	writeSiteFile(t, root, "docs/b.md", "---\nid: same\ntitle: B\n---\n\nBody.\n")

	output, err := executeCommand("check", "--config", configPath)
	if err == nil {
		t.Fatal("expected check to fail on duplicate document IDs")
	}
	if !strings.Contains(output, "✗ Failed to load documents") {
		t.Errorf("check output missing the duplicate failure:\n%s", output)
	}
}
