package refcheck

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest lists references to check.
type Manifest struct {
	// Base is used for references that do not set their own base.
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	// References to resolve, in report order.
	References []Reference `json:"references" yaml:"references"`
}

// Reference is a single reference and the file that contains it.
type Reference struct {
	// Base is the project-relative path of the file containing Ref.
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	// Ref is the raw reference, e.g. "../Shared/common.uss".
	Ref string `json:"ref" yaml:"ref"`
}

// LoadManifest reads a YAML or JSON manifest from r. Unknown fields are
// rejected.
func LoadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := &Manifest{}
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return m, nil
}

// Entries returns the manifest references with [Manifest.Base] applied to
// those without a base.
func (m *Manifest) Entries() []Reference {
	refs := make([]Reference, len(m.References))
	for i, ref := range m.References {
		if ref.Base == "" {
			ref.Base = m.Base
		}

		refs[i] = ref
	}

	return refs
}
