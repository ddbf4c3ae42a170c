package dataset

import (
	"fmt"

	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/schema"
	"ecomload/internal/source"
)

// OrderItemSchema describes documents in the standalone order_items collection.
func OrderItemSchema() *schema.Descriptor {
	return &schema.Descriptor{
		Required: []string{
			"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value",
		},
		Fields: []schema.Field{
			{Name: "order_id", Types: []string{schema.TypeString}},
			{Name: "order_item_id", Types: []string{schema.TypeInt, schema.TypeLong}},
			{Name: "product_id", Types: []string{schema.TypeString}},
			{Name: "seller_id", Types: []string{schema.TypeString}},
			{Name: "shipping_limit_date", Types: []string{schema.TypeDate}},
			{Name: "price", Types: money},
			{Name: "freight_value", Types: money},
		},
	}
}

// TransformOrderItem builds an order-item document. The store assigns _id.
func TransformOrderItem(row source.Row, rec *coerce.Recorder) interface{} {
	return domain.OrderItem{
		OrderID:           coerce.StripQuotes(row.Get("order_id")),
		OrderItemID:       rec.Int("order_item_id", row.Get("order_item_id")),
		ProductID:         coerce.StripQuotes(row.Get("product_id")),
		SellerID:          coerce.StripQuotes(row.Get("seller_id")),
		ShippingLimitDate: rec.Date("shipping_limit_date", row.Get("shipping_limit_date")),
		Price:             rec.Float("price", row.Get("price")),
		FreightValue:      rec.Float("freight_value", row.Get("freight_value")),
	}
}

// OrderItemSpec returns the order_items ingest spec reading from src.
func OrderItemSpec(src string) *ingest.Spec {
	return &ingest.Spec{
		Dataset:    OrderItems,
		Collection: OrderItems,
		Source:     src,
		Schema:     OrderItemSchema(),
		Indexes: []domain.IndexSpec{
			{Keys: []string{"product_id"}},
			{Keys: []string{"order_id", "order_item_id"}, Unique: true},
		},
		Key: func(row source.Row) string {
			return fmt.Sprintf("%s#%s", coerce.StripQuotes(row.Get("order_id")), row.Get("order_item_id"))
		},
		Transform: TransformOrderItem,
	}
}
