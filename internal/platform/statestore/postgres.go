package statestore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps records in a PostgreSQL table via GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wires a GORM-backed store. Caller manages DB lifecycle.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	store := &PostgresStore{db: db}
	if db != nil {
		_ = db.AutoMigrate(&stateRecord{})
	}
	return store
}

// stateRecord holds one serialized record per key.
type stateRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stateRecord) TableName() string { return "state_records" }

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.ensureDB(); err != nil {
		return nil, false, err
	}
	var record stateRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(record.Value), true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := stateRecord{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      record.Value,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (s *PostgresStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres state store not configured")
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
