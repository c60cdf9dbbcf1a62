package store

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/kart-io/docquery/internal/model"
	"github.com/kart-io/docquery/pkg/component/postgres"
)

var (
	clientFactory Factory
	once          sync.Once
)

// datastore implements the Factory interface.
type datastore struct {
	db *gorm.DB
}

// GetFactory returns the storage factory backed by the given Postgres
// client. The schema is migrated on first use.
func GetFactory(client *postgres.Client) (Factory, error) {
	var err error

	once.Do(func() {
		db := client.DB()
		if migrateErr := db.AutoMigrate(&model.Document{}); migrateErr != nil {
			err = fmt.Errorf("failed to migrate schema: %w", migrateErr)
			return
		}
		clientFactory = &datastore{db}
	})

	if clientFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get postgres factory: %w", err)
	}

	return clientFactory, nil
}

// NewFactory wraps an existing gorm connection into a Factory without
// touching the package singleton. Used by tests.
func NewFactory(db *gorm.DB) (Factory, error) {
	if err := db.AutoMigrate(&model.Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &datastore{db}, nil
}

// Documents returns the document store.
func (ds *datastore) Documents() DocumentStore {
	return newDocuments(ds.db)
}

// Close closes the factory and underlying connections.
func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
