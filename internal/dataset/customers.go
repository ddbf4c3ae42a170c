package dataset

import (
	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/schema"
	"ecomload/internal/source"
)

// CustomerSchema describes documents in the customers collection.
func CustomerSchema() *schema.Descriptor {
	return &schema.Descriptor{
		Required: []string{"customer_id", "customer_city", "customer_state", "customer_unique_id"},
		Fields: []schema.Field{
			{Name: "customer_id", Types: []string{schema.TypeString}},
			{Name: "customer_unique_id", Types: []string{schema.TypeString}},
			{Name: "customer_city", Types: []string{schema.TypeString}},
			{Name: "customer_state", Types: []string{schema.TypeString}},
			{Name: "customer_zip_code_prefix", Types: []string{schema.TypeString, schema.TypeNull}},
		},
	}
}

// TransformCustomer builds a customer document keyed by customer_id.
func TransformCustomer(row source.Row, _ *coerce.Recorder) interface{} {
	id := coerce.StripQuotes(row.Get("customer_id"))
	return domain.Customer{
		ID:            id,
		CustomerID:    id,
		UniqueID:      coerce.StripQuotes(row.Get("customer_unique_id")),
		City:          row.Get("customer_city"),
		State:         row.Get("customer_state"),
		ZipCodePrefix: coerce.Optional(row.Get("customer_zip_code_prefix")),
	}
}

// CustomerSpec returns the customers ingest spec reading from src.
func CustomerSpec(src string) *ingest.Spec {
	return &ingest.Spec{
		Dataset:    Customers,
		Collection: Customers,
		Source:     src,
		Schema:     CustomerSchema(),
		Indexes: []domain.IndexSpec{
			{Keys: []string{"customer_unique_id"}},
			{Keys: []string{"customer_state"}},
			{Keys: []string{"customer_city"}},
		},
		Key:       idKey("customer_id"),
		Transform: TransformCustomer,
	}
}

func idKey(column string) ingest.KeyFunc {
	return func(row source.Row) string {
		return coerce.StripQuotes(row.Get(column))
	}
}
