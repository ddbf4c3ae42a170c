package ingest

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ecomload/internal/domain"
	"ecomload/internal/port"
	"ecomload/internal/schema"
)

// EnsureCollection creates the collection with validator attached when it is
// absent, and replaces the validator in place when it exists. It reports
// whether the collection was created.
func EnsureCollection(ctx context.Context, store port.DocumentStore, name string, validator *schema.Descriptor, level domain.ValidationLevel, log *logrus.Entry) (bool, error) {
	exists, err := store.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("checking collection %s: %w", name, err)
	}

	if !exists {
		log.Infof("Creating collection '%s' with validation schema", name)
		if err := store.CreateCollection(ctx, name, validator, level); err != nil {
			return false, fmt.Errorf("creating collection %s: %w", name, err)
		}
		return true, nil
	}

	log.Infof("Updating validation schema for collection '%s'", name)
	if err := store.UpdateValidator(ctx, name, validator, level); err != nil {
		return false, fmt.Errorf("updating validator of %s: %w", name, err)
	}
	return false, nil
}
