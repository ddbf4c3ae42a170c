package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a document in the customers collection.
type Customer struct {
	ID            string  `bson:"_id" json:"id"`
	CustomerID    string  `bson:"customer_id" json:"customer_id"`
	UniqueID      string  `bson:"customer_unique_id" json:"customer_unique_id"`
	City          string  `bson:"customer_city" json:"customer_city"`
	State         string  `bson:"customer_state" json:"customer_state"`
	ZipCodePrefix *string `bson:"customer_zip_code_prefix" json:"customer_zip_code_prefix"`
}

// Product is a document in the products collection. Field names keep the
// dataset's "lenght" spelling so documents line up with the source columns.
type Product struct {
	ID                string `bson:"_id" json:"id"`
	CategoryName      string `bson:"product_category_name" json:"product_category_name"`
	NameLength        *int64 `bson:"product_name_lenght" json:"product_name_lenght"`
	DescriptionLength *int64 `bson:"product_description_lenght" json:"product_description_lenght"`
	PhotosQty         *int64 `bson:"product_photos_qty" json:"product_photos_qty"`
	WeightG           *int64 `bson:"product_weight_g" json:"product_weight_g"`
	LengthCM          *int64 `bson:"product_length_cm" json:"product_length_cm"`
	HeightCM          *int64 `bson:"product_height_cm" json:"product_height_cm"`
	WidthCM           *int64 `bson:"product_width_cm" json:"product_width_cm"`
}

// OrderLine is a line item embedded in an Order.
type OrderLine struct {
	ProductID         string     `bson:"product_id" json:"product_id"`
	ShippingLimitDate *time.Time `bson:"shipping_limit_date" json:"shipping_limit_date"`
	Price             *float64   `bson:"price" json:"price"`
	FreightValue      *float64   `bson:"freight_value" json:"freight_value"`
}

// Order is a document in the orders collection. Items is never nil.
type Order struct {
	ID                    string      `bson:"_id" json:"id"`
	CustomerID            string      `bson:"customer_id" json:"customer_id"`
	Status                string      `bson:"order_status" json:"order_status"`
	PurchaseTimestamp     *time.Time  `bson:"order_purchase_timestamp" json:"order_purchase_timestamp"`
	ApprovedAt            *time.Time  `bson:"order_approved_at" json:"order_approved_at"`
	DeliveredCarrierDate  *time.Time  `bson:"order_delivered_carrier_date" json:"order_delivered_carrier_date"`
	DeliveredCustomerDate *time.Time  `bson:"order_delivered_customer_date" json:"order_delivered_customer_date"`
	EstimatedDeliveryDate *time.Time  `bson:"order_estimated_delivery_date" json:"order_estimated_delivery_date"`
	Items                 []OrderLine `bson:"items" json:"items"`
}

// OrderItem is a document in the standalone order_items collection. It has
// no natural single-field key, so the store assigns _id.
type OrderItem struct {
	OrderID           string     `bson:"order_id" json:"order_id"`
	OrderItemID       *int64     `bson:"order_item_id" json:"order_item_id"`
	ProductID         string     `bson:"product_id" json:"product_id"`
	SellerID          string     `bson:"seller_id" json:"seller_id"`
	ShippingLimitDate *time.Time `bson:"shipping_limit_date" json:"shipping_limit_date"`
	Price             *float64   `bson:"price" json:"price"`
	FreightValue      *float64   `bson:"freight_value" json:"freight_value"`
}

// Rejection describes one document the store refused during a bulk insert.
type Rejection struct {
	Index   int    `json:"index"`
	Key     string `json:"key,omitempty"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// InsertResult is the outcome of one unordered bulk insert.
type InsertResult struct {
	Offered  int
	Accepted int
	Rejected []Rejection
}

// IndexSpec declares one index on a collection. Keys are ascending.
type IndexSpec struct {
	Keys   []string
	Unique bool
}

// RunSummary records the outcome of one ingest run.
type RunSummary struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Dataset           string    `db:"dataset" json:"dataset"`
	Collection        string    `db:"collection" json:"collection"`
	Source            string    `db:"source" json:"source"`
	Status            RunStatus `db:"status" json:"status"`
	CollectionCreated bool      `db:"collection_created" json:"collection_created"`
	Rows              int       `db:"rows_read" json:"rows_read"`
	Offered           int       `db:"offered" json:"offered"`
	Accepted          int       `db:"accepted" json:"accepted"`
	Rejected          int       `db:"rejected" json:"rejected"`
	Dropped           int       `db:"dropped" json:"dropped"`
	JoinDropped       int       `db:"join_dropped" json:"join_dropped"`
	CoercionFailures  int       `db:"coercion_failures" json:"coercion_failures"`
	Flushes           int       `db:"flushes" json:"flushes"`
	Error             string    `db:"error" json:"error,omitempty"`
	StartedAt         time.Time `db:"started_at" json:"started_at"`
	FinishedAt        time.Time `db:"finished_at" json:"finished_at"`
}

// Elapsed returns the wall-clock duration of the run.
func (s *RunSummary) Elapsed() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
