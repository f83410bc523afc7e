package adapter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vbonduro/homelist/internal/domain"
)

const schemaURL = "external_property.json"

//go:embed schema/external_property.json
var schemaJSON []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Decode validates data against the external record schema and unmarshals
// it. Schema violations, a blank id and an unreadable area are reported
// as domain.ErrValidation.
func Decode(data []byte) (ExternalRecord, error) {
	var rec ExternalRecord

	schema, err := compileSchema()
	if err != nil {
		return rec, fmt.Errorf("failed to compile schema: %w", err)
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return rec, fmt.Errorf("%w: body is not valid JSON: %v", domain.ErrValidation, err)
	}
	if err := schema.Validate(raw); err != nil {
		return rec, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return rec, check(rec)
}

// check covers what the schema cannot express: the id must survive
// trimming, and an area must parse.
func check(rec ExternalRecord) error {
	if firstNonEmpty(string(rec.PropertyID), string(rec.ID)) == "" {
		return fmt.Errorf("%w: id is blank", domain.ErrValidation)
	}
	if rec.Details != nil {
		if _, err := domain.ParseArea(string(rec.Details.Area)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeProperty is Decode followed by Adapt.
func DecodeProperty(data []byte) (domain.Property, error) {
	rec, err := Decode(data)
	if err != nil {
		return domain.Property{}, err
	}
	return Adapt(rec), nil
}
