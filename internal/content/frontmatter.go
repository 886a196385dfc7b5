package content

import (
	"bytes"
	"errors"
	"math"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds the recognized document front matter fields. Unknown
// keys are tolerated and ignored.
type FrontMatter struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Slug            string   `yaml:"slug"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
	Draft           bool     `yaml:"draft"`
}

var docIDPattern = regexp.MustCompile(`^[^/]*$`)

// Validate rejects front matter values that would corrupt document identity
// or ordering downstream.
func (f *FrontMatter) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.ID,
			validation.Match(docIDPattern).Error("id cannot contain slashes"),
		),
		validation.Field(&f.SidebarPosition, validation.By(finiteSidebarPosition)),
	)
}

func finiteSidebarPosition(value interface{}) error {
	p, ok := value.(*float64)
	if !ok || p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return errors.New("sidebar_position must be a finite number")
	}
	return nil
}

// ParseFrontMatter splits a document into validated front matter and body.
// A document without a front matter block yields a zero FrontMatter and the
// content unchanged.
func ParseFrontMatter(source []byte) (*FrontMatter, []byte, error) {
	body, raw := extractFrontmatter(source)

	fm := &FrontMatter{}
	if raw != nil {
		if err := yaml.Unmarshal(raw, fm); err != nil {
			return nil, nil, err
		}
	}
	if err := fm.Validate(); err != nil {
		return nil, nil, err
	}
	return fm, body, nil
}

// extractFrontmatter extracts a YAML front matter block fenced by "---"
// lines at the top of content. Returns the content without the block and
// the raw block bytes, or the content unchanged and nil when no complete
// block exists.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	// Check if starts with ---
	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}

	// Find closing ---
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}

	// No closing delimiter found
	return content, nil
}
