package sidebar

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// CategoryMetadata is the validated content of a category metadata file.
// All fields are optional; nil means the file did not set the field.
type CategoryMetadata struct {
	Label     *string  `json:"label" yaml:"label"`
	Position  *float64 `json:"position" yaml:"position"`
	Collapsed *bool    `json:"collapsed" yaml:"collapsed"`
}

// categoryFileNames lists the recognized metadata filenames in probe order.
// The first variant found wins; further variants in the same directory are
// ignored, never merged.
var categoryFileNames = []string{
	"_category_.json",
	"_category_.yml",
	"_category_.yaml",
}

// LoadCategoryMetadata probes dir for a category metadata file and returns
// its validated content, or (nil, nil) when no metadata file exists. A file
// that exists but fails to parse or validate yields a MetadataError carrying
// the offending path.
func LoadCategoryMetadata(dir string) (*CategoryMetadata, error) {
	for _, name := range categoryFileNames {
		metaPath := filepath.Join(dir, name)
		if _, err := os.Stat(metaPath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to probe category metadata: %w", err)
		}

		data, err := os.ReadFile(metaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read category metadata: %w", err)
		}

		meta, err := parseCategoryMetadata(data, filepath.Ext(name))
		if err != nil {
			return nil, &MetadataError{Path: metaPath, Err: err}
		}
		return meta, nil
	}

	return nil, nil
}

// parseCategoryMetadata decodes one metadata payload and validates the
// recognized fields. The decoder is picked by extension: ".json" uses the
// JSON decoder, the YAML variants use the YAML decoder. Unknown fields pass
// through unrejected; recognized fields with the wrong type fail decoding.
func parseCategoryMetadata(data []byte, ext string) (*CategoryMetadata, error) {
	meta := &CategoryMetadata{}

	var err error
	if ext == ".json" {
		err = json.Unmarshal(data, meta)
	} else {
		err = yaml.Unmarshal(data, meta)
	}
	if err != nil {
		return nil, err
	}

	if err := meta.validate(); err != nil {
		return nil, err
	}
	return meta, nil
}

// validate rejects values the decoders accept but the generator cannot use.
func (m *CategoryMetadata) validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Label, validation.NilOrNotEmpty.Error("label must not be empty")),
		validation.Field(&m.Position, validation.By(finitePosition)),
	)
}

// finitePosition rejects the infinities and NaN that YAML produces from
// ".inf" and ".nan" literals; they have no defined sort order.
func finitePosition(value interface{}) error {
	p, ok := value.(*float64)
	if !ok || p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return errors.New("position must be a finite number")
	}
	return nil
}
