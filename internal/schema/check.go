package schema

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Violation is one way a document fails its Descriptor.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}

// Check encodes doc to BSON and reports every violation of d. A nil result
// means the document conforms.
func (d *Descriptor) Check(doc interface{}) ([]Violation, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return d.checkRaw("", raw)
}

func (d *Descriptor) checkRaw(prefix string, raw bson.Raw) ([]Violation, error) {
	var out []Violation

	for _, name := range d.Required {
		if _, err := raw.LookupErr(name); err != nil {
			out = append(out, Violation{Path: prefix + name, Reason: "required field is missing"})
		}
	}

	elems, err := raw.Elements()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	for _, el := range elems {
		key := el.Key()
		val := el.Value()
		f, ok := d.Field(key)
		if !ok {
			if d.AdditionalProperties != nil && !*d.AdditionalProperties && key != "_id" {
				out = append(out, Violation{Path: prefix + key, Reason: "additional property not allowed"})
			}
			continue
		}

		alias := typeAlias(val.Type)
		if !accepts(f.Types, alias) {
			out = append(out, Violation{
				Path:   prefix + key,
				Reason: fmt.Sprintf("bson type %s not in %v", alias, f.Types),
			})
			continue
		}

		if f.Items == nil || val.Type != bsontype.Array {
			continue
		}
		values, err := val.Array().Values()
		if err != nil {
			return nil, fmt.Errorf("reading array %s: %w", key, err)
		}
		for i, item := range values {
			path := fmt.Sprintf("%s%s.%d", prefix, key, i)
			if item.Type != bsontype.EmbeddedDocument {
				out = append(out, Violation{Path: path, Reason: "array item is not a document"})
				continue
			}
			nested, err := f.Items.checkRaw(path+".", item.Document())
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

func accepts(types []string, alias string) bool {
	for _, t := range types {
		if t == alias {
			return true
		}
	}
	return false
}

func typeAlias(t bsontype.Type) string {
	switch t {
	case bsontype.String:
		return TypeString
	case bsontype.Int32:
		return TypeInt
	case bsontype.Int64:
		return TypeLong
	case bsontype.Double:
		return TypeDouble
	case bsontype.Decimal128:
		return TypeDecimal
	case bsontype.DateTime:
		return TypeDate
	case bsontype.Null:
		return TypeNull
	case bsontype.Array:
		return TypeArray
	case bsontype.EmbeddedDocument:
		return TypeObject
	case bsontype.Boolean:
		return TypeBool
	case bsontype.ObjectID:
		return TypeObjectID
	default:
		return t.String()
	}
}
