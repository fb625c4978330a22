package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord stores images inline, keeping their order.
type productRecord struct {
	ID        string        `gorm:"primaryKey;column:id;size:64"`
	Images    []imageRecord `gorm:"column:images;type:jsonb;serializer:json"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

type imageRecord struct {
	Src     string `json:"src"`
	SrcWebp string `json:"srcWebp"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Alt     string `json:"alt"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or replaces a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"images", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByIDs loads the products referenced by ids in a single query.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	images := make([]imageRecord, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, imageRecord{
			Src:     img.Src,
			SrcWebp: img.SrcWebp,
			Width:   img.Width,
			Height:  img.Height,
			Alt:     img.Alt,
		})
	}
	return productRecord{ID: product.ID, Images: images}
}

func (r productRecord) toDomain() *domain.Product {
	images := make([]domain.Image, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, domain.Image{
			Src:     img.Src,
			SrcWebp: img.SrcWebp,
			Width:   img.Width,
			Height:  img.Height,
			Alt:     img.Alt,
		})
	}
	return &domain.Product{ID: r.ID, Images: images}
}
