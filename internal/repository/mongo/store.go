package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ecomload/internal/domain"
	"ecomload/internal/port"
	"ecomload/internal/schema"
)

type documentStore struct {
	client *driver.Client
	db     *driver.Database
}

// NewDocumentStore creates a DocumentStore writing to database on client.
func NewDocumentStore(client *driver.Client, database string) port.DocumentStore {
	return &documentStore{client: client, db: client.Database(database)}
}

func (s *documentStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}
	return nil
}

func (s *documentStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, fmt.Errorf("documentStore.CollectionExists: %w", err)
	}
	return len(names) > 0, nil
}

func (s *documentStore) CreateCollection(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error {
	opts := options.CreateCollection().
		SetValidator(validator.Validator()).
		SetValidationLevel(string(level))
	if err := s.db.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("documentStore.CreateCollection %s: %w", name, err)
	}
	return nil
}

func (s *documentStore) UpdateValidator(ctx context.Context, name string, validator *schema.Descriptor, level domain.ValidationLevel) error {
	cmd := collModCommand(name, validator, level)
	if err := s.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("documentStore.UpdateValidator %s: %w", name, err)
	}
	return nil
}

func (s *documentStore) InsertMany(ctx context.Context, collection string, docs []interface{}) (*domain.InsertResult, error) {
	if len(docs) == 0 {
		return &domain.InsertResult{}, nil
	}
	res, err := s.db.Collection(collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return insertResult(len(docs), res, err)
}

func (s *documentStore) CreateIndexes(ctx context.Context, collection string, indexes []domain.IndexSpec) ([]string, error) {
	if len(indexes) == 0 {
		return nil, nil
	}
	names, err := s.db.Collection(collection).Indexes().CreateMany(ctx, indexModels(indexes))
	if err != nil {
		return nil, fmt.Errorf("documentStore.CreateIndexes %s: %w", collection, err)
	}
	return names, nil
}

func (s *documentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func collModCommand(name string, validator *schema.Descriptor, level domain.ValidationLevel) bson.D {
	return bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator.Validator()},
		{Key: "validationLevel", Value: string(level)},
	}
}

// insertResult translates an unordered InsertMany outcome. Per-document write
// errors become rejections; any other error is returned as is.
func insertResult(offered int, res *driver.InsertManyResult, err error) (*domain.InsertResult, error) {
	out := &domain.InsertResult{Offered: offered}
	if err == nil {
		out.Accepted = offered
		if res != nil && len(res.InsertedIDs) < offered {
			out.Accepted = len(res.InsertedIDs)
		}
		return out, nil
	}

	var bwe driver.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return nil, err
	}

	out.Rejected = make([]domain.Rejection, 0, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		rej := domain.Rejection{
			Index:   we.Index,
			Code:    we.Code,
			Message: we.Message,
		}
		if len(we.Details) > 0 {
			rej.Details = we.Details.String()
		}
		out.Rejected = append(out.Rejected, rej)
	}
	out.Accepted = offered - len(bwe.WriteErrors)
	if out.Accepted < 0 {
		out.Accepted = 0
	}
	return out, nil
}

func indexModels(indexes []domain.IndexSpec) []driver.IndexModel {
	models := make([]driver.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		keys := make(bson.D, 0, len(idx.Keys))
		for _, k := range idx.Keys {
			keys = append(keys, bson.E{Key: k, Value: 1})
		}
		model := driver.IndexModel{Keys: keys}
		if idx.Unique {
			model.Options = options.Index().SetUnique(true)
		}
		models = append(models, model)
	}
	return models
}
