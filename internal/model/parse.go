package model

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBase = "https://brickforge.ai/schemas/"

var schemas = func() map[string]*jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	files := map[string]string{
		KindSingle: "single_view.schema.json",
		KindMulti:  "multi_view.schema.json",
		KindTri:    "tri_view.schema.json",
	}
	for _, name := range files {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			panic(fmt.Sprintf("read schema %s: %v", name, err))
		}
		if err := c.AddResource(schemaBase+name, bytes.NewReader(b)); err != nil {
			panic(fmt.Sprintf("add schema %s: %v", name, err))
		}
	}
	out := make(map[string]*jsonschema.Schema, len(files))
	for kind, name := range files {
		out[kind] = c.MustCompile(schemaBase + name)
	}
	return out
}()

// Parse decodes and validates a silhouette document. The three variants are
// structurally overlapping, so untagged documents are attempted in the fixed
// priority order tri -> multi -> single and the first variant that validates
// wins. An explicit, known view_mode tag narrows the attempt to that variant.
func Parse(raw []byte) (*Parsed, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "$", Reason: "invalid JSON: " + err.Error()}}}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Fields: []FieldError{{Field: "$", Reason: "document must be a JSON object"}}}
	}

	attempts := []string{KindTri, KindMulti, KindSingle}
	if tag, _ := obj["view_mode"].(string); tag == KindTri || tag == KindMulti || tag == KindSingle {
		attempts = []string{tag}
	}

	errs := make(map[string]*ValidationError, len(attempts))
	for _, kind := range attempts {
		p, verr := parseAs(kind, raw, doc)
		if verr == nil {
			return p, nil
		}
		errs[kind] = verr
	}
	return nil, errs[bestAttempt(attempts, obj)]
}

// bestAttempt picks which variant's failure to report when nothing matched:
// the variant whose signature fields the document actually carries.
func bestAttempt(attempts []string, obj map[string]any) string {
	if len(attempts) == 1 {
		return attempts[0]
	}
	_, hasTop := obj["top_view"]
	_, hasFront := obj["front_view"]
	_, hasLayers := obj["layers"]
	switch {
	case hasTop:
		return KindTri
	case hasFront:
		return KindMulti
	case hasLayers:
		return KindSingle
	}
	return KindSingle
}

func parseAs(kind string, raw []byte, doc any) (*Parsed, *ValidationError) {
	if err := schemas[kind].Validate(doc); err != nil {
		return nil, schemaErr(kind, err)
	}
	switch kind {
	case KindTri:
		var m TriViewModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, decodeErr(kind, err)
		}
		if verr := m.Validate(); verr != nil {
			return nil, verr
		}
		return &Parsed{Kind: KindTri, Tri: &m}, nil
	case KindMulti:
		var m MultiViewModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, decodeErr(kind, err)
		}
		if verr := m.Validate(); verr != nil {
			return nil, verr
		}
		return &Parsed{Kind: KindMulti, Multi: &m}, nil
	default:
		var m SilhouetteModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, decodeErr(kind, err)
		}
		if verr := m.Validate(); verr != nil {
			return nil, verr
		}
		return &Parsed{Kind: KindSingle, Single: &m}, nil
	}
}

func decodeErr(kind string, err error) *ValidationError {
	return &ValidationError{Kind: kind, Fields: []FieldError{{Field: "$", Reason: err.Error()}}}
}

// schemaErr flattens a jsonschema validation tree into leaf field errors.
func schemaErr(kind string, err error) *ValidationError {
	verr := &ValidationError{Kind: kind}
	var walk func(ve *jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			loc := ve.InstanceLocation
			if loc == "" {
				loc = "$"
			}
			verr.add(loc, ve.Message)
			return
		}
		for _, c := range ve.Causes {
			walk(c)
		}
	}
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		walk(ve)
	} else {
		verr.add("$", err.Error())
	}
	return verr
}
