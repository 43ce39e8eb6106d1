package repository

import (
	"context"
	"strings"

	"servicemarket/internal/domain"

	"gorm.io/gorm"
)

// OfferFilters narrows and orders the offer list. MinPrice and
// MaxDeliveryTime match offers having at least one detail inside the bound;
// the subquery form keeps each offer in the result once.
type OfferFilters struct {
	Search          string
	CreatorID       int64
	MinPrice        float64
	MaxDeliveryTime int
	Ordering        string
	Limit           int
	Offset          int
}

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create stores the offer and its details in one transaction.
func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) List(ctx context.Context, f OfferFilters) ([]domain.Offer, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := r.db.WithContext(ctx).Model(&domain.Offer{})

	if f.CreatorID > 0 {
		q = q.Where("user_id = ?", f.CreatorID)
	}

	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	// Subquery instead of JOIN so an offer with several matching details
	// still shows up exactly once (works in SQLite and Postgres).
	if f.MinPrice > 0 {
		sub := r.db.Model(&domain.OfferDetail{}).
			Select("offer_id").
			Where("price >= ?", f.MinPrice)
		q = q.Where("id IN (?)", sub)
	}
	if f.MaxDeliveryTime > 0 {
		sub := r.db.Model(&domain.OfferDetail{}).
			Select("offer_id").
			Where("delivery_time_in_days <= ?", f.MaxDeliveryTime)
		q = q.Where("id IN (?)", sub)
	}

	switch f.Ordering {
	case "updated_at":
		q = q.Order("updated_at ASC")
	case "-updated_at":
		q = q.Order("updated_at DESC")
	case "min_price":
		q = q.Order("(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id) ASC")
	case "-min_price":
		q = q.Order("(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id) DESC")
	default:
		q = q.Order("updated_at DESC")
	}

	var total int64
	countQuery := q.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []domain.Offer
	err := q.
		Preload("Details").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&offers).Error
	return offers, total, err
}

// Update patches the offer row and any changed details in one transaction.
func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer, details []domain.OfferDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Offer{}).Where("id = ?", o.ID).Updates(map[string]any{
			"title":       o.Title,
			"image":       o.Image,
			"description": o.Description,
		}).Error; err != nil {
			return err
		}
		for i := range details {
			d := details[i]
			// Struct-based Updates so the features serializer applies;
			// the explicit Select keeps zero values from being skipped.
			err := tx.Model(&domain.OfferDetail{}).
				Where("id = ? AND offer_id = ?", d.ID, o.ID).
				Select("title", "revisions", "delivery_time_in_days", "price", "features").
				Updates(&d).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the offer with its details and reviews in one transaction.
func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", id).Delete(&domain.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Offer{}, id).Error
	})
}

func (r *OfferRepository) GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	var d domain.OfferDetail
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// OfferIDsByOwner lists offer ids owned by the given user, oldest first.
func (r *OfferRepository) OfferIDsByOwner(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *OfferRepository) DB() *gorm.DB {
	return r.db
}
