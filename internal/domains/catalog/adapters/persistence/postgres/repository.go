package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

var _ ports.Repository = (*Repository)(nil)

// Repository serves the menu from PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed menu. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRecord{})
	}
	return repo
}

// itemRecord maps a menu entry to a relational row.
type itemRecord struct {
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

func (itemRecord) TableName() string { return "catalog_items" }

// Seed upserts items keeping their slice order as display order.
func (r *Repository) Seed(ctx context.Context, items []domain.Item) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		record := toRecord(item, i)
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"position":    record.Position,
					"name":        record.Name,
					"description": record.Description,
					"price_cents": record.PriceCents,
					"image_ref":   record.ImageRef,
					"category":    record.Category,
					"tags":        record.Tags,
					"updated_at":  gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// List returns menu entries matching filter in display order.
func (r *Repository) List(ctx context.Context, filter domain.Filter) ([]domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("position ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		query = query.Where("LOWER(name || ' ' || description) LIKE ?", "%"+q+"%")
	}
	var records []itemRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// GetByID fetches a menu entry by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Item{}, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, ports.ErrNotFound
		}
		return domain.Item{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(item domain.Item, position int) itemRecord {
	return itemRecord{
		ID:          item.ID,
		Position:    position,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.BasePrice.Cents(),
		ImageRef:    item.ImageRef,
		Category:    string(item.Category),
		Tags:        pq.StringArray(item.Tags),
	}
}

func (r itemRecord) toDomain() domain.Item {
	var tags []string
	if len(r.Tags) > 0 {
		tags = append([]string(nil), r.Tags...)
	}
	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   money.FromCents(r.PriceCents),
		ImageRef:    r.ImageRef,
		Category:    domain.Category(r.Category),
		Tags:        tags,
	}
}
