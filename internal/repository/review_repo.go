package repository

import (
	"context"

	"servicemarket/internal/domain"

	"gorm.io/gorm"
)

// ReviewFilters selects which reviews a requester may see. Exactly one of
// OfferID, OwnerUserID, ReviewerID is expected to be set by the service.
type ReviewFilters struct {
	OfferID     int64
	OwnerUserID int64 // reviews on offers owned by this business user
	ReviewerID  int64
	Ordering    string
	Limit       int
	Offset      int
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilters) ([]domain.Review, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := r.db.WithContext(ctx).Model(&domain.Review{})

	switch {
	case f.OfferID > 0:
		q = q.Where("offer_id = ?", f.OfferID)
	case f.OwnerUserID > 0:
		sub := r.db.Model(&domain.Offer{}).
			Select("id").
			Where("user_id = ?", f.OwnerUserID)
		q = q.Where("offer_id IN (?)", sub)
	case f.ReviewerID > 0:
		q = q.Where("reviewer_id = ?", f.ReviewerID)
	}

	switch f.Ordering {
	case "updated_at":
		q = q.Order("updated_at ASC")
	case "rating":
		q = q.Order("rating ASC")
	case "-rating":
		q = q.Order("rating DESC")
	default:
		q = q.Order("updated_at DESC")
	}

	var reviews []domain.Review
	err := q.Limit(f.Limit).Offset(f.Offset).Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ExistsByReviewerAndOffer(ctx context.Context, reviewerID, offerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("reviewer_id = ? AND offer_id = ?", reviewerID, offerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]any{
			"rating":      rv.Rating,
			"description": rv.Description,
		}).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
