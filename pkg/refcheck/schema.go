package refcheck

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of [Manifest].
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	s := r.Reflect(&Manifest{})
	s.Title = "assetref manifest"
	s.Description = "References to validate against a project root."

	return s
}

// WriteSchema writes the indented JSON schema of [Manifest] to w.
func WriteSchema(w io.Writer) error {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json schema: %w", err)
	}

	b = append(b, '\n')

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write json schema: %w", err)
	}

	return nil
}
