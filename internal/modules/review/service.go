package review

import (
	"context"
	"errors"
	"strings"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews *repository.ReviewRepository
	offers  *repository.OfferRepository
}

func NewService(reviews *repository.ReviewRepository, offers *repository.OfferRepository) *Service {
	return &Service{reviews: reviews, offers: offers}
}

// Create stores one review per (offer, reviewer). The existence pre-check is
// only there for a clean error message; the unique index is what actually
// guards against a concurrent duplicate, so its violation maps to the same
// conflict.
func (s *Service) Create(ctx context.Context, reviewerID int64, req CreateReviewRequest) (*domain.Review, error) {
	offerID, err := s.resolveOffer(ctx, req.Offer, req.BusinessUser)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByReviewerAndOffer(ctx, reviewerID, offerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		OfferID:     offerID,
		ReviewerID:  reviewerID,
		Rating:      req.Rating,
		Description: req.Description,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

// List applies the role-dependent default scope: business users see reviews
// on their own offers, everyone else sees what the query names, falling back
// to their own authored reviews.
func (s *Service) List(ctx context.Context, userID int64, role domain.UserRole, q ListQuery) ([]domain.Review, error) {
	f := repository.ReviewFilters{
		Ordering: q.Ordering,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	switch {
	case role == domain.RoleBusiness:
		f.OwnerUserID = userID
	case q.Offer > 0:
		f.OfferID = q.Offer
	case q.BusinessUser > 0:
		offerID, err := s.resolveOffer(ctx, 0, q.BusinessUser)
		if err != nil {
			return nil, err
		}
		f.OfferID = offerID
	case q.ReviewerID > 0:
		f.ReviewerID = q.ReviewerID
	default:
		f.ReviewerID = userID
	}

	return s.reviews.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) Update(ctx context.Context, id, requesterID int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.ReviewerID != requesterID {
		return nil, ErrForbidden
	}

	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Description != nil {
		rv.Description = *req.Description
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rv.ReviewerID != requesterID {
		return ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}

// resolveOffer turns the request's offer reference into a concrete offer id.
// A business_user reference only resolves when that user owns exactly one
// offer; several offers would make the pick arbitrary, so it is rejected.
func (s *Service) resolveOffer(ctx context.Context, offerID, businessUserID int64) (int64, error) {
	if offerID > 0 {
		if _, err := s.offers.GetByID(ctx, offerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrOfferNotFound
			}
			return 0, err
		}
		return offerID, nil
	}

	if businessUserID > 0 {
		ids, err := s.offers.OfferIDsByOwner(ctx, businessUserID)
		if err != nil {
			return 0, err
		}
		switch len(ids) {
		case 0:
			return 0, ErrNoOfferForUser
		case 1:
			return ids[0], nil
		default:
			return 0, ErrAmbiguousBusiness
		}
	}

	return 0, ErrOfferRequired
}

func isUniqueViolation(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "2067")
}
