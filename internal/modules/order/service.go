package order

import (
	"context"
	"errors"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	orders *repository.OrderRepository
	offers *repository.OfferRepository
	users  *repository.UserRepository
}

func NewService(orders *repository.OrderRepository, offers *repository.OfferRepository, users *repository.UserRepository) *Service {
	return &Service{orders: orders, offers: offers, users: users}
}

// Create copies the chosen detail into a fresh order row. The snapshot is
// final: later changes to the detail never reach this order.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateOrderRequest) (*domain.Order, error) {
	detail, err := s.offers.GetDetailByID(ctx, req.OfferDetailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}

	offer, err := s.offers.GetByID(ctx, detail.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}

	o := &domain.Order{
		CustomerUserID:     customerID,
		BusinessUserID:     offer.UserID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             domain.OrderInProgress,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List shows everything to staff, own orders (either side) to everyone else.
func (s *Service) List(ctx context.Context, userID int64, isStaff bool) ([]domain.Order, error) {
	if isStaff {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListForUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID int64, isStaff bool) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isStaff && o.CustomerUserID != userID && o.BusinessUserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, userID int64, req UpdateStatusRequest) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.BusinessUserID != userID {
		return nil, ErrNotBusinessSide
	}

	next := domain.OrderStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.orders.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// CountByStatus resolves the business user first; a missing id or a
// customer-role id is a not-found, not an empty count.
func (s *Service) CountByStatus(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error) {
	u, err := s.users.GetByID(ctx, businessUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBusinessUserNotFound
		}
		return 0, err
	}
	if u.Role != domain.RoleBusiness {
		return 0, ErrBusinessUserNotFound
	}
	return s.orders.CountByBusinessAndStatus(ctx, businessUserID, status)
}
