package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomload/internal/coerce"
	"ecomload/internal/domain"
	"ecomload/internal/ingest"
	"ecomload/internal/source"
)

func row(header []string, values ...string) source.Row {
	return source.NewRow(header, values, 2)
}

var (
	customerHeader  = []string{"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"}
	productHeader   = []string{"product_id", "product_category_name", "product_name_lenght", "product_description_lenght", "product_photos_qty", "product_weight_g", "product_length_cm", "product_height_cm", "product_width_cm"}
	orderHeader     = []string{"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at", "order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date"}
	orderItemHeader = []string{"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"}
)

func TestCustomer_ConformsAndStripsQuotes(t *testing.T) {
	rec := coerce.NewRecorder()
	doc := TransformCustomer(row(customerHeader, `"c1"`, `"u1"`, "", "sao paulo", "SP"), rec)

	c, ok := doc.(domain.Customer)
	require.True(t, ok)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "c1", c.CustomerID)
	assert.Equal(t, "u1", c.UniqueID)
	assert.Nil(t, c.ZipCodePrefix)

	violations, err := CustomerSchema().Check(doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestProduct_EmptyMeasuresAreNullWithoutFailures(t *testing.T) {
	rec := coerce.NewRecorder()
	doc := TransformProduct(row(productHeader, "p1", "", "", "", "", "", "", "", ""), rec)

	p := doc.(domain.Product)
	assert.Equal(t, "p1", p.ID)
	assert.Nil(t, p.NameLength)
	assert.Nil(t, p.WidthCM)
	assert.Zero(t, rec.Failures())

	violations, err := ProductSchema().Check(doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestProduct_UnparseableMeasureRecorded(t *testing.T) {
	rec := coerce.NewRecorder()
	doc := TransformProduct(row(productHeader, "p1", "perfumaria", "40", "287", "1", "heavy", "19", "8", "13"), rec)

	p := doc.(domain.Product)
	require.NotNil(t, p.NameLength)
	assert.Equal(t, int64(40), *p.NameLength)
	assert.Nil(t, p.WeightG)
	assert.Equal(t, 1, rec.Failures())
}

func TestOrder_EmbedsGroupedLines(t *testing.T) {
	spec := OrderSpec("orders.csv", "items.csv")
	require.NotNil(t, spec.Join)

	rec := coerce.NewRecorder()
	line := spec.Join.Transform(row(orderItemHeader, `"o1"`, "1", `"p1"`, "s1", "2017-09-19 09:45:35", "58.90", "13.29"), rec)
	require.NoError(t, spec.Join.Into.Collect(spec.Join.Key(row(orderItemHeader, `"o1"`)), line))

	doc := spec.Transform(row(orderHeader, "o1", `"c1"`, "delivered", "2017-09-13 08:59:02", "", "", "", "2017-09-29 00:00:00"), rec)
	o := doc.(domain.Order)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "c1", o.CustomerID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, 58.90, *o.Items[0].Price)
	assert.Equal(t, time.Date(2017, 9, 19, 9, 45, 35, 0, time.UTC), *o.Items[0].ShippingLimitDate)
	assert.Nil(t, o.ApprovedAt)
	assert.Zero(t, rec.Failures())

	violations, err := OrderSchema().Check(doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestOrder_NoMatchingLinesGivesEmptyItems(t *testing.T) {
	spec := OrderSpec("orders.csv", "items.csv")
	doc := spec.Transform(row(orderHeader, "o9", "c1", "created", "", "", "", "", ""), coerce.NewRecorder())

	o := doc.(domain.Order)
	assert.NotNil(t, o.Items)
	assert.Empty(t, o.Items)

	violations, err := OrderSchema().Check(doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestOrderSpec_FreshGroupingPerBuild(t *testing.T) {
	a := OrderSpec("o.csv", "i.csv")
	b := OrderSpec("o.csv", "i.csv")
	require.NoError(t, a.Join.Into.Collect("o1", domain.OrderLine{ProductID: "p"}))

	doc := b.Transform(row(orderHeader, "o1", "c1", "created"), coerce.NewRecorder())
	assert.Empty(t, doc.(domain.Order).Items)
}

func TestOrderItem_Conforms(t *testing.T) {
	rec := coerce.NewRecorder()
	doc := TransformOrderItem(row(orderItemHeader, `"o1"`, "2", `"p1"`, `"s1"`, "2017-09-19 09:45:35", "58.90", "13.29"), rec)

	it := doc.(domain.OrderItem)
	assert.Equal(t, "o1", it.OrderID)
	assert.Equal(t, int64(2), *it.OrderItemID)
	assert.Equal(t, "s1", it.SellerID)

	violations, err := OrderItemSchema().Check(doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestOrderItem_BadPriceFailsPrecheck(t *testing.T) {
	rec := coerce.NewRecorder()
	doc := TransformOrderItem(row(orderItemHeader, "o1", "1", "p1", "s1", "2017-09-19 09:45:35", "n/a", "13.29"), rec)

	assert.Equal(t, 1, rec.Failures())
	violations, err := OrderItemSchema().Check(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestBuild_AllSpecsValid(t *testing.T) {
	for _, name := range Names() {
		spec, err := Build(name, nil)
		require.NoError(t, err, name)
		assert.NoError(t, spec.Validate(), name)
		assert.Equal(t, DefaultSources[name], spec.Source)
		assert.NotEmpty(t, spec.Indexes)
	}
}

func TestBuild_SourceOverride(t *testing.T) {
	spec, err := Build(Orders, Sources{Orders: "s3://bucket/orders.csv", OrderItems: "items.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/orders.csv", spec.Source)
	assert.Equal(t, "items.xlsx", spec.Join.Source)
}

func TestBuild_Unknown(t *testing.T) {
	_, err := Build("sellers", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestResolve(t *testing.T) {
	names, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{Customers, Products, Orders, OrderItems}, names)

	names, err = Resolve([]string{"orders", "all"})
	require.NoError(t, err)
	assert.Len(t, names, 4)

	names, err = Resolve([]string{"products", "customers"})
	require.NoError(t, err)
	assert.Equal(t, []string{Products, Customers}, names)

	_, err = Resolve([]string{"geolocation"})
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestOrderItemIndexes_UniqueCompound(t *testing.T) {
	spec := OrderItemSpec("x.csv")
	var unique []domain.IndexSpec
	for _, idx := range spec.Indexes {
		if idx.Unique {
			unique = append(unique, idx)
		}
	}
	require.Len(t, unique, 1)
	assert.Equal(t, []string{"order_id", "order_item_id"}, unique[0].Keys)
}

var _ ingest.Collector = ingest.NewGrouping[domain.OrderLine]()
