package profile

import (
	"context"
	"errors"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
}

func NewService(profiles *repository.ProfileRepository, users *repository.UserRepository) *Service {
	return &Service{profiles: profiles, users: users}
}

func (s *Service) Get(ctx context.Context, userID int64) (*ProfileResponse, error) {
	row, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProfileResponse(row), nil
}

// Update patches the profile owned by requesterID. Only provided fields
// change; an email update goes through to the user account.
func (s *Service) Update(ctx context.Context, userID, requesterID int64, req UpdateProfileRequest) (*ProfileResponse, error) {
	if userID != requesterID {
		return nil, ErrForbidden
	}

	row, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := row.Profile
	applyString(&p.FirstName, req.FirstName)
	applyString(&p.LastName, req.LastName)
	applyString(&p.File, req.File)
	applyString(&p.Location, req.Location)
	applyString(&p.Tel, req.Tel)
	applyString(&p.Description, req.Description)
	applyString(&p.WorkingHours, req.WorkingHours)

	if err := s.profiles.Update(ctx, &p); err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" {
		if err := s.users.UpdateEmail(ctx, userID, *req.Email); err != nil {
			return nil, err
		}
	}

	updated, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(updated), nil
}

func (s *Service) ListBusiness(ctx context.Context) ([]BusinessListItem, error) {
	rows, err := s.profiles.ListByRole(ctx, domain.RoleBusiness)
	if err != nil {
		return nil, err
	}
	out := make([]BusinessListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBusinessItem(row))
	}
	return out, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]CustomerListItem, error) {
	rows, err := s.profiles.ListByRole(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCustomerItem(row))
	}
	return out, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
