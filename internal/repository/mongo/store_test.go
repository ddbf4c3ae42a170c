package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"

	"ecomload/internal/config"
	"ecomload/internal/domain"
	"ecomload/internal/schema"
)

func writeError(index, code int, msg string, details bson.Raw) driver.BulkWriteError {
	return driver.BulkWriteError{WriteError: driver.WriteError{Index: index, Code: code, Message: msg, Details: details}}
}

func TestInsertResult_AllAccepted(t *testing.T) {
	res := &driver.InsertManyResult{InsertedIDs: []interface{}{"a", "b", "c"}}

	out, err := insertResult(3, res, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Offered)
	assert.Equal(t, 3, out.Accepted)
	assert.Empty(t, out.Rejected)
}

func TestInsertResult_PartialFailure(t *testing.T) {
	details, err := bson.Marshal(bson.D{{Key: "operatorName", Value: "$jsonSchema"}})
	require.NoError(t, err)

	bwe := driver.BulkWriteException{WriteErrors: []driver.BulkWriteError{
		writeError(1, 121, "Document failed validation", details),
		writeError(3, 121, "Document failed validation", nil),
	}}

	out, err := insertResult(5, &driver.InsertManyResult{}, bwe)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Accepted)
	require.Len(t, out.Rejected, 2)
	assert.Equal(t, 1, out.Rejected[0].Index)
	assert.Equal(t, 121, out.Rejected[0].Code)
	assert.Contains(t, out.Rejected[0].Details, "operatorName")
	assert.Equal(t, 3, out.Rejected[1].Index)
	assert.Empty(t, out.Rejected[1].Details)
}

func TestInsertResult_MoreErrorsThanOfferedClamps(t *testing.T) {
	bwe := driver.BulkWriteException{WriteErrors: []driver.BulkWriteError{
		writeError(0, 11000, "duplicate key", nil),
		writeError(1, 11000, "duplicate key", nil),
	}}

	out, err := insertResult(1, nil, bwe)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Accepted)
}

func TestInsertResult_OtherErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")

	out, err := insertResult(2, nil, boom)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
}

func TestInsertResult_WriteConcernOnlyPropagates(t *testing.T) {
	bwe := driver.BulkWriteException{WriteConcernError: &driver.WriteConcernError{Code: 64, Message: "waiting for replication timed out"}}

	_, err := insertResult(2, nil, bwe)
	assert.Error(t, err)
}

func TestIndexModels(t *testing.T) {
	models := indexModels([]domain.IndexSpec{
		{Keys: []string{"items.product_id", "items.price"}},
		{Keys: []string{"order_id", "order_item_id"}, Unique: true},
	})
	require.Len(t, models, 2)

	assert.Equal(t, bson.D{{Key: "items.product_id", Value: 1}, {Key: "items.price", Value: 1}}, models[0].Keys)
	assert.Nil(t, models[0].Options)

	require.NotNil(t, models[1].Options)
	require.NotNil(t, models[1].Options.Unique)
	assert.True(t, *models[1].Options.Unique)
}

func TestCollModCommand(t *testing.T) {
	d := &schema.Descriptor{
		Required: []string{"order_status"},
		Fields:   []schema.Field{{Name: "order_status", Types: []string{schema.TypeString}}},
	}

	cmd := collModCommand("orders", d, domain.ValidationLevelModerate)
	require.Len(t, cmd, 3)
	assert.Equal(t, bson.E{Key: "collMod", Value: "orders"}, cmd[0])
	assert.Equal(t, d.Validator(), cmd[1].Value)
	assert.Equal(t, "moderate", cmd[2].Value)
}

func TestClientOptions_HostsWithCredentials(t *testing.T) {
	opts := ClientOptions(&config.MongoConfig{
		Hosts:      []string{"shard-01:27017", "shard-02:27017"},
		Username:   "loader",
		Password:   "secret",
		AuthSource: "admin",
	})

	assert.Equal(t, []string{"shard-01:27017", "shard-02:27017"}, opts.Hosts)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "loader", opts.Auth.Username)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 10*time.Second, *opts.ServerSelectionTimeout)
}

func TestClientOptions_URIAndTimeout(t *testing.T) {
	opts := ClientOptions(&config.MongoConfig{
		URI:            "mongodb://mongo.internal:27017",
		ConnectTimeout: 3 * time.Second,
	})

	assert.Equal(t, []string{"mongo.internal:27017"}, opts.Hosts)
	assert.Nil(t, opts.Auth)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
}
