// Package schema holds the declarative description of a document kind and
// renders it as the store's $jsonSchema validator. The same Descriptor is
// used for the optional application-side precheck, so the two never drift.
package schema

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// BSON type aliases accepted in a Field's Types.
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeLong     = "long"
	TypeDouble   = "double"
	TypeDecimal  = "decimal"
	TypeDate     = "date"
	TypeNull     = "null"
	TypeArray    = "array"
	TypeObject   = "object"
	TypeBool     = "bool"
	TypeObjectID = "objectId"
)

var knownTypes = map[string]bool{
	TypeString: true, TypeInt: true, TypeLong: true, TypeDouble: true, TypeDecimal: true,
	TypeDate: true, TypeNull: true, TypeArray: true, TypeObject: true, TypeBool: true,
	TypeObjectID: true,
}

// Field declares the accepted BSON types of one property. Items describes the
// elements of an array of sub-documents.
type Field struct {
	Name  string
	Types []string
	Items *Descriptor
}

// Descriptor lists required properties and per-property accepted types for
// one document kind.
type Descriptor struct {
	Required []string
	Fields   []Field
	// AdditionalProperties is emitted only when non-nil.
	AdditionalProperties *bool
}

// Validate checks the descriptor itself for consistency.
func (d *Descriptor) Validate() error {
	declared := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema: field with empty name")
		}
		if declared[f.Name] {
			return fmt.Errorf("schema: field %q declared twice", f.Name)
		}
		declared[f.Name] = true
		if len(f.Types) == 0 {
			return fmt.Errorf("schema: field %q has no accepted types", f.Name)
		}
		for _, t := range f.Types {
			if !knownTypes[t] {
				return fmt.Errorf("schema: field %q: unknown bson type %q", f.Name, t)
			}
		}
		if f.Items != nil {
			if err := f.Items.Validate(); err != nil {
				return fmt.Errorf("schema: items of %q: %w", f.Name, err)
			}
		}
	}
	for _, r := range d.Required {
		if !declared[r] {
			return fmt.Errorf("schema: required field %q is not declared", r)
		}
	}
	return nil
}

// Field returns the declared field with the given name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validator renders the descriptor as a {$jsonSchema: ...} validator document.
func (d *Descriptor) Validator() bson.D {
	return bson.D{{Key: "$jsonSchema", Value: d.jsonSchema()}}
}

func (d *Descriptor) jsonSchema() bson.D {
	props := make(bson.D, 0, len(d.Fields))
	for _, f := range d.Fields {
		prop := bson.D{{Key: "bsonType", Value: bsonType(f.Types)}}
		if f.Items != nil {
			prop = append(prop, bson.E{Key: "items", Value: f.Items.jsonSchema()})
		}
		props = append(props, bson.E{Key: f.Name, Value: prop})
	}

	doc := bson.D{{Key: "bsonType", Value: TypeObject}}
	if len(d.Required) > 0 {
		doc = append(doc, bson.E{Key: "required", Value: d.Required})
	}
	doc = append(doc, bson.E{Key: "properties", Value: props})
	if d.AdditionalProperties != nil {
		doc = append(doc, bson.E{Key: "additionalProperties", Value: *d.AdditionalProperties})
	}
	return doc
}

// bsonType emits a single alias as a plain string and several as an array.
func bsonType(types []string) interface{} {
	if len(types) == 1 {
		return types[0]
	}
	return types
}
