package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"

	"ecomload/internal/domain"
	"ecomload/internal/port"
)

// DefaultReportLimit caps report rows when the caller passes no limit.
const DefaultReportLimit = 10

const millisPerDay = 1000 * 60 * 60 * 24

type reportRepo struct {
	db *driver.Database
}

// NewReportRepo creates a ReportRepository over database on client.
func NewReportRepo(client *driver.Client, database string) port.ReportRepository {
	return &reportRepo{db: client.Database(database)}
}

func (r *reportRepo) RevenueByState(ctx context.Context, filters domain.ReportFilters) ([]domain.StateRevenueRow, error) {
	rows := []domain.StateRevenueRow{}
	if err := r.aggregate(ctx, "orders", revenueByStatePipeline(limitOf(filters)), &rows); err != nil {
		return nil, fmt.Errorf("reportRepo.RevenueByState: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) TopOrders(ctx context.Context, filters domain.ReportFilters) ([]domain.OrderValueRow, error) {
	rows := []domain.OrderValueRow{}
	if err := r.aggregate(ctx, "orders", topOrdersPipeline(limitOf(filters)), &rows); err != nil {
		return nil, fmt.Errorf("reportRepo.TopOrders: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) DeliveryTimeByState(ctx context.Context, filters domain.ReportFilters) ([]domain.DeliveryTimeRow, error) {
	rows := []domain.DeliveryTimeRow{}
	if err := r.aggregate(ctx, "orders", deliveryTimePipeline(limitOf(filters)), &rows); err != nil {
		return nil, fmt.Errorf("reportRepo.DeliveryTimeByState: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) CountDocuments(ctx context.Context, collection string) (int64, error) {
	n, err := r.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("reportRepo.CountDocuments %s: %w", collection, err)
	}
	return n, nil
}

// CountNulls counts documents where field is null or missing.
func (r *reportRepo) CountNulls(ctx context.Context, collection, field string) (int64, error) {
	n, err := r.db.Collection(collection).CountDocuments(ctx, bson.D{{Key: field, Value: nil}})
	if err != nil {
		return 0, fmt.Errorf("reportRepo.CountNulls %s.%s: %w", collection, field, err)
	}
	return n, nil
}

func (r *reportRepo) aggregate(ctx context.Context, collection string, pipeline driver.Pipeline, out interface{}) error {
	cursor, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func limitOf(filters domain.ReportFilters) int {
	if filters.Limit <= 0 {
		return DefaultReportLimit
	}
	return filters.Limit
}

func lookupCustomer(as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "customers"},
		{Key: "localField", Value: "customer_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: path}}
}

// revenueByStatePipeline sums line prices per customer state and counts the
// distinct orders behind them.
func revenueByStatePipeline(limit int) driver.Pipeline {
	return driver.Pipeline{
		unwind("$items"),
		lookupCustomer("c"),
		unwind("$c"),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$c.customer_state"},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$items.price"}}},
			{Key: "orders", Value: bson.D{{Key: "$addToSet", Value: "$_id"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "state", Value: "$_id"},
			{Key: "revenue", Value: 1},
			{Key: "orderCount", Value: bson.D{{Key: "$size", Value: "$orders"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

// topOrdersPipeline ranks orders by the sum of their line prices and joins
// the buyer's city and state.
func topOrdersPipeline(limit int) driver.Pipeline {
	return driver.Pipeline{
		unwind("$items"),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "customer_id", Value: bson.D{{Key: "$first", Value: "$customer_id"}}},
			{Key: "totalOrderValue", Value: bson.D{{Key: "$sum", Value: "$items.price"}}},
			{Key: "totalItems", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalOrderValue", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		lookupCustomer("customerDetails"),
		unwind("$customerDetails"),
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "totalOrderValue", Value: 1},
			{Key: "totalItems", Value: 1},
			{Key: "customerCity", Value: "$customerDetails.customer_city"},
			{Key: "customerState", Value: "$customerDetails.customer_state"},
		}}},
	}
}

// deliveryTimePipeline averages purchase-to-delivery days per state, fastest
// first. Undelivered orders are skipped.
func deliveryTimePipeline(limit int) driver.Pipeline {
	return driver.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "order_delivered_customer_date", Value: bson.D{{Key: "$ne", Value: nil}}},
		}}},
		lookupCustomer("c"),
		unwind("$c"),
		{{Key: "$project", Value: bson.D{
			{Key: "state", Value: "$c.customer_state"},
			{Key: "days", Value: bson.D{{Key: "$divide", Value: bson.A{
				bson.D{{Key: "$subtract", Value: bson.A{"$order_delivered_customer_date", "$order_purchase_timestamp"}}},
				millisPerDay,
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$state"},
			{Key: "avgDays", Value: bson.D{{Key: "$avg", Value: "$days"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avgDays", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
}
