package offer

import (
	"context"
	"errors"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	offers   *repository.OfferRepository
	profiles *repository.ProfileRepository
}

func NewService(offers *repository.OfferRepository, profiles *repository.ProfileRepository) *Service {
	return &Service{offers: offers, profiles: profiles}
}

// Create stores a new offer with its three tier details. The role check
// happens at the route level; the detail shape is validated here.
func (s *Service) Create(ctx context.Context, userID int64, req CreateOfferRequest) (*RetrieveResponse, error) {
	if len(req.Details) != 3 {
		return nil, &DetailCountError{Got: len(req.Details)}
	}

	seen := map[domain.OfferType]bool{}
	details := make([]domain.OfferDetail, 0, 3)
	for _, p := range req.Details {
		tier := domain.OfferType(p.OfferType)
		if !tier.Valid() {
			return nil, ErrInvalidTier
		}
		if seen[tier] {
			return nil, ErrDuplicateTier
		}
		seen[tier] = true

		features := p.Features
		if features == nil {
			features = []string{}
		}
		details = append(details, domain.OfferDetail{
			Title:              p.Title,
			Revisions:          p.Revisions,
			DeliveryTimeInDays: p.DeliveryTimeInDays,
			Price:              p.Price,
			Features:           features,
			OfferType:          tier,
		})
	}

	o := &domain.Offer{
		UserID:      userID,
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Details:     details,
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}

	return toRetrieveResponse(o), nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResponse, error) {
	offers, total, err := s.offers.List(ctx, repository.OfferFilters{
		Search:          q.Search,
		CreatorID:       q.CreatorID,
		MinPrice:        q.MinPrice,
		MaxDeliveryTime: q.MaxDeliveryTime,
		Ordering:        q.Ordering,
		Limit:           q.Limit,
		Offset:          q.Offset,
	})
	if err != nil {
		return nil, err
	}

	// Owner cards are cached per request; creator filters make repeats common.
	owners := map[int64]*OwnerDetails{}
	items := make([]ListItem, 0, len(offers))
	for _, o := range offers {
		owner, ok := owners[o.UserID]
		if !ok {
			row, err := s.profiles.GetByUserID(ctx, o.UserID)
			if err == nil {
				owner = &OwnerDetails{
					FirstName: row.Profile.FirstName,
					LastName:  row.Profile.LastName,
					Username:  row.Username,
				}
			}
			owners[o.UserID] = owner
		}
		items = append(items, toListItem(o, owner))
	}

	return &ListResponse{Count: total, Results: items}, nil
}

func (s *Service) Retrieve(ctx context.Context, id int64) (*RetrieveResponse, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toRetrieveResponse(o), nil
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailResponse, error) {
	d, err := s.offers.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	resp := toDetailResponse(*d)
	return &resp, nil
}

// Update patches the offer owned by requesterID. Every nested detail payload
// must name its tier; an id wins over the tier lookup, and a target that does
// not belong to the offer is a validation error rather than a silent skip.
func (s *Service) Update(ctx context.Context, id, requesterID int64, req UpdateOfferRequest) (*RetrieveResponse, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.UserID != requesterID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Image != nil {
		o.Image = *req.Image
	}
	if req.Description != nil {
		o.Description = *req.Description
	}

	changed := make([]domain.OfferDetail, 0, len(req.Details))
	for _, p := range req.Details {
		tier := domain.OfferType(p.OfferType)
		if !tier.Valid() {
			return nil, ErrInvalidTier
		}

		target, err := locateDetail(o.Details, p.ID, tier)
		if err != nil {
			return nil, err
		}

		if p.Title != nil {
			target.Title = *p.Title
		}
		if p.Revisions != nil {
			target.Revisions = *p.Revisions
		}
		if p.DeliveryTimeInDays != nil {
			target.DeliveryTimeInDays = *p.DeliveryTimeInDays
		}
		if p.Price != nil {
			target.Price = *p.Price
		}
		if p.Features != nil {
			target.Features = *p.Features
		}
		changed = append(changed, target)
	}

	if err := s.offers.Update(ctx, o, changed); err != nil {
		return nil, err
	}

	updated, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRetrieveResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if o.UserID != requesterID {
		return ErrForbidden
	}
	return s.offers.Delete(ctx, id)
}

// locateDetail resolves the update target: by id when given, by tier
// otherwise. Both lookups are scoped to the offer's own details.
func locateDetail(details []domain.OfferDetail, id *int64, tier domain.OfferType) (domain.OfferDetail, error) {
	if id != nil {
		for _, d := range details {
			if d.ID == *id {
				return d, nil
			}
		}
		return domain.OfferDetail{}, ErrUnknownDetail
	}
	for _, d := range details {
		if d.OfferType == tier {
			return d, nil
		}
	}
	return domain.OfferDetail{}, ErrUnknownDetail
}
