package repository

import (
	"context"

	"servicemarket/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ProfileRow joins a profile with the account fields derived from its user.
type ProfileRow struct {
	Profile  domain.Profile
	Username string
	Email    string
	Role     domain.UserRole
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*ProfileRow, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}

	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, p.UserID).Error; err != nil {
		return nil, err
	}

	return &ProfileRow{Profile: p, Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"first_name":    p.FirstName,
			"last_name":     p.LastName,
			"file":          p.File,
			"location":      p.Location,
			"tel":           p.Tel,
			"description":   p.Description,
			"working_hours": p.WorkingHours,
		}).Error
}

type profileUserRow struct {
	domain.Profile `gorm:"embedded"`
	Username       string
	Email          string
	Role           string
}

// ListByRole returns every profile whose user has the given role,
// ordered by username.
func (r *ProfileRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]ProfileRow, error) {
	var rows []profileUserRow
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Select("profiles.*, users.username AS username, users.email AS email, users.role AS role").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", role).
		Order("users.username").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ProfileRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProfileRow{
			Profile:  row.Profile,
			Username: row.Username,
			Email:    row.Email,
			Role:     domain.UserRole(row.Role),
		})
	}
	return out, nil
}
