package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the storefront schema: the seeded menu and the JSON state records.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&catalogItemRecord{},
		&stateRecord{},
	)
}

// Catalog schema mirrors the catalog Postgres adapter.
type catalogItemRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Position    int            `gorm:"column:position;index"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	PriceCents  int64          `gorm:"column:price_cents"`
	ImageRef    string         `gorm:"column:image_ref"`
	Category    string         `gorm:"column:category;type:varchar(16);index"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (catalogItemRecord) TableName() string { return "catalog_items" }

// State schema mirrors the statestore Postgres backend.
type stateRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stateRecord) TableName() string { return "state_records" }
