package domain

// StateRevenueRow is one row of the revenue-by-customer-state report.
type StateRevenueRow struct {
	State      string  `bson:"state" json:"state" csv:"state"`
	Revenue    float64 `bson:"revenue" json:"revenue" csv:"revenue"`
	OrderCount int     `bson:"orderCount" json:"order_count" csv:"order_count"`
}

// OrderValueRow is one row of the most-valuable-orders report.
type OrderValueRow struct {
	OrderID         string  `bson:"_id" json:"order_id" csv:"order_id"`
	TotalOrderValue float64 `bson:"totalOrderValue" json:"total_order_value" csv:"total_order_value"`
	TotalItems      int     `bson:"totalItems" json:"total_items" csv:"total_items"`
	CustomerCity    string  `bson:"customerCity" json:"customer_city" csv:"customer_city"`
	CustomerState   string  `bson:"customerState" json:"customer_state" csv:"customer_state"`
}

// DeliveryTimeRow is one row of the average-delivery-days-by-state report.
type DeliveryTimeRow struct {
	State   string  `bson:"_id" json:"state" csv:"state"`
	AvgDays float64 `bson:"avgDays" json:"avg_days" csv:"avg_days"`
}

// FieldNullCount is the number of documents with a null or missing field.
type FieldNullCount struct {
	Field   string  `json:"field" csv:"field"`
	Nulls   int64   `json:"nulls" csv:"nulls"`
	Percent float64 `json:"percent" csv:"percent"`
}

// CollectionOverview summarizes one collection's size and null density.
type CollectionOverview struct {
	Collection string           `json:"collection"`
	Total      int64            `json:"total"`
	Fields     []FieldNullCount `json:"fields"`
}

// ReportFilters holds common report parameters.
type ReportFilters struct {
	Limit int
}

// Report names accepted by the CLI and the HTTP API.
const (
	ReportStates     = "states"
	ReportOrders     = "orders"
	ReportDelivery   = "delivery"
	ReportCollection = "collection"
)
