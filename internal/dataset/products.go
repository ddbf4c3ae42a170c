package dataset

import (
	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/schema"
	"ecomload/internal/source"
)

var nullableInt = []string{schema.TypeInt, schema.TypeLong, schema.TypeNull}

// ProductSchema describes documents in the products collection. Only the
// category is required; measures may be null.
func ProductSchema() *schema.Descriptor {
	open := true
	return &schema.Descriptor{
		Required: []string{"product_category_name"},
		Fields: []schema.Field{
			{Name: "product_category_name", Types: []string{schema.TypeString, schema.TypeNull}},
			{Name: "product_name_lenght", Types: nullableInt},
			{Name: "product_description_lenght", Types: nullableInt},
			{Name: "product_photos_qty", Types: nullableInt},
			{Name: "product_weight_g", Types: nullableInt},
			{Name: "product_length_cm", Types: nullableInt},
			{Name: "product_height_cm", Types: nullableInt},
			{Name: "product_width_cm", Types: nullableInt},
		},
		AdditionalProperties: &open,
	}
}

// TransformProduct builds a product document keyed by product_id.
func TransformProduct(row source.Row, rec *coerce.Recorder) interface{} {
	measure := func(column string) *int64 {
		return rec.Int(column, row.Get(column))
	}
	return domain.Product{
		ID:                coerce.StripQuotes(row.Get("product_id")),
		CategoryName:      row.Get("product_category_name"),
		NameLength:        measure("product_name_lenght"),
		DescriptionLength: measure("product_description_lenght"),
		PhotosQty:         measure("product_photos_qty"),
		WeightG:           measure("product_weight_g"),
		LengthCM:          measure("product_length_cm"),
		HeightCM:          measure("product_height_cm"),
		WidthCM:           measure("product_width_cm"),
	}
}

// ProductSpec returns the products ingest spec reading from src.
func ProductSpec(src string) *ingest.Spec {
	return &ingest.Spec{
		Dataset:    Products,
		Collection: Products,
		Source:     src,
		Schema:     ProductSchema(),
		Indexes: []domain.IndexSpec{
			{Keys: []string{"product_category_name"}},
		},
		Key:       idKey("product_id"),
		Transform: TransformProduct,
	}
}
