package dataset

import (
	"time"

	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/schema"
	"ecomload/internal/source"
)

var nullableDate = []string{schema.TypeDate, schema.TypeNull}

var money = []string{schema.TypeDouble, schema.TypeDecimal}

// OrderLineSchema describes the line items embedded in an order.
func OrderLineSchema() *schema.Descriptor {
	return &schema.Descriptor{
		Required: []string{"product_id", "shipping_limit_date", "price", "freight_value"},
		Fields: []schema.Field{
			{Name: "product_id", Types: []string{schema.TypeString}},
			{Name: "shipping_limit_date", Types: []string{schema.TypeDate}},
			{Name: "price", Types: money},
			{Name: "freight_value", Types: money},
		},
	}
}

// OrderSchema describes documents in the orders collection.
func OrderSchema() *schema.Descriptor {
	return &schema.Descriptor{
		Required: []string{"order_status", "customer_id"},
		Fields: []schema.Field{
			{Name: "order_status", Types: []string{schema.TypeString}},
			{Name: "customer_id", Types: []string{schema.TypeString}},
			{Name: "order_purchase_timestamp", Types: nullableDate},
			{Name: "order_approved_at", Types: nullableDate},
			{Name: "order_delivered_carrier_date", Types: nullableDate},
			{Name: "order_delivered_customer_date", Types: nullableDate},
			{Name: "order_estimated_delivery_date", Types: nullableDate},
			{Name: "items", Types: []string{schema.TypeArray}, Items: OrderLineSchema()},
		},
	}
}

// TransformOrderLine builds the embedded line item of an order-item row.
func TransformOrderLine(row source.Row, rec *coerce.Recorder) interface{} {
	return domain.OrderLine{
		ProductID:         coerce.StripQuotes(row.Get("product_id")),
		ShippingLimitDate: rec.Date("shipping_limit_date", row.Get("shipping_limit_date")),
		Price:             rec.Float("price", row.Get("price")),
		FreightValue:      rec.Float("freight_value", row.Get("freight_value")),
	}
}

// TransformOrder returns a transform that embeds the lines grouped under
// each order's identifier.
func TransformOrder(lines *ingest.Grouping[domain.OrderLine]) ingest.TransformFunc {
	return func(row source.Row, rec *coerce.Recorder) interface{} {
		id := coerce.StripQuotes(row.Get("order_id"))
		date := func(column string) *time.Time {
			return rec.Date(column, row.Get(column))
		}
		return domain.Order{
			ID:                    id,
			CustomerID:            coerce.StripQuotes(row.Get("customer_id")),
			Status:                row.Get("order_status"),
			PurchaseTimestamp:     date("order_purchase_timestamp"),
			ApprovedAt:            date("order_approved_at"),
			DeliveredCarrierDate:  date("order_delivered_carrier_date"),
			DeliveredCustomerDate: date("order_delivered_customer_date"),
			EstimatedDeliveryDate: date("order_estimated_delivery_date"),
			Items:                 lines.Items(id),
		}
	}
}

// OrderSpec returns the orders ingest spec. Rows of itemsSrc are grouped by
// order_id and embedded as each order's items.
func OrderSpec(src, itemsSrc string) *ingest.Spec {
	lines := ingest.NewGrouping[domain.OrderLine]()
	return &ingest.Spec{
		Dataset:    Orders,
		Collection: Orders,
		Source:     src,
		Schema:     OrderSchema(),
		Indexes: []domain.IndexSpec{
			{Keys: []string{"customer_id"}},
			{Keys: []string{"order_status"}},
			{Keys: []string{"items.product_id"}},
			{Keys: []string{"items.product_id", "items.price"}},
		},
		Key:       idKey("order_id"),
		Transform: TransformOrder(lines),
		Join: &ingest.Join{
			Source:    itemsSrc,
			Key:       idKey("order_id"),
			Transform: TransformOrderLine,
			Into:      lines,
		},
	}
}
