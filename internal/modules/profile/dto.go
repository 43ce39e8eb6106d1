package profile

import "servicemarket/internal/repository"

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	File         *string `json:"file,omitempty"`
	Location     *string `json:"location,omitempty"`
	Tel          *string `json:"tel,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ProfileResponse is the full profile card, account fields included.
type ProfileResponse struct {
	User         int64  `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
	Email        string `json:"email"`
	CreatedAt    string `json:"created_at"`
}

// BusinessListItem leaves out email and created_at, matching the
// reduced listing shape.
type BusinessListItem struct {
	User         int64  `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
}

// CustomerListItem is the slimmest listing shape; uploaded_at mirrors the
// profile's creation time.
type CustomerListItem struct {
	User       int64  `json:"user"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	File       string `json:"file"`
	UploadedAt string `json:"uploaded_at"`
	Type       string `json:"type"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func toProfileResponse(row *repository.ProfileRow) *ProfileResponse {
	return &ProfileResponse{
		User:         row.Profile.UserID,
		Username:     row.Username,
		FirstName:    row.Profile.FirstName,
		LastName:     row.Profile.LastName,
		File:         row.Profile.File,
		Location:     row.Profile.Location,
		Tel:          row.Profile.Tel,
		Description:  row.Profile.Description,
		WorkingHours: row.Profile.WorkingHours,
		Type:         string(row.Role),
		Email:        row.Email,
		CreatedAt:    row.Profile.CreatedAt.Format(timeLayout),
	}
}

func toBusinessItem(row repository.ProfileRow) BusinessListItem {
	return BusinessListItem{
		User:         row.Profile.UserID,
		Username:     row.Username,
		FirstName:    row.Profile.FirstName,
		LastName:     row.Profile.LastName,
		File:         row.Profile.File,
		Location:     row.Profile.Location,
		Tel:          row.Profile.Tel,
		Description:  row.Profile.Description,
		WorkingHours: row.Profile.WorkingHours,
		Type:         string(row.Role),
	}
}

func toCustomerItem(row repository.ProfileRow) CustomerListItem {
	return CustomerListItem{
		User:       row.Profile.UserID,
		Username:   row.Username,
		FirstName:  row.Profile.FirstName,
		LastName:   row.Profile.LastName,
		File:       row.Profile.File,
		UploadedAt: row.Profile.CreatedAt.Format(timeLayout),
		Type:       string(row.Role),
	}
}
