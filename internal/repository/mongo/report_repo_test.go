package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"ecomload/internal/domain"
)

func stageNames(stages []bson.D) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s[0].Key
	}
	return names
}

func TestRevenueByStatePipeline(t *testing.T) {
	p := revenueByStatePipeline(5)

	assert.Equal(t, []string{"$unwind", "$lookup", "$unwind", "$group", "$project", "$sort", "$limit"}, stageNames(p))
	assert.Equal(t, 5, p[len(p)-1][0].Value)
}

func TestTopOrdersPipeline_LimitsBeforeLookup(t *testing.T) {
	p := topOrdersPipeline(10)

	names := stageNames(p)
	assert.Equal(t, []string{"$unwind", "$group", "$sort", "$limit", "$lookup", "$unwind", "$project"}, names)
}

func TestDeliveryTimePipeline_SkipsUndelivered(t *testing.T) {
	p := deliveryTimePipeline(10)

	require.Equal(t, "$match", p[0][0].Key)
	match := p[0][0].Value.(bson.D)
	assert.Equal(t, "order_delivered_customer_date", match[0].Key)

	sort := p[len(p)-2][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "avgDays", Value: 1}, sort[0])
}

func TestLimitOf(t *testing.T) {
	assert.Equal(t, DefaultReportLimit, limitOf(domain.ReportFilters{}))
	assert.Equal(t, DefaultReportLimit, limitOf(domain.ReportFilters{Limit: -1}))
	assert.Equal(t, 25, limitOf(domain.ReportFilters{Limit: 25}))
}

func TestPipelinesEncode(t *testing.T) {
	for _, p := range [][]bson.D{revenueByStatePipeline(3), topOrdersPipeline(3), deliveryTimePipeline(3)} {
		for _, stage := range p {
			_, err := bson.Marshal(stage)
			assert.NoError(t, err)
		}
	}
}
