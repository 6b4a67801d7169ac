package auth

// LoginRequest carries the ID token minted by the authorization backend
type LoginRequest struct {
	Token string `json:"token" binding:"required,min=20"`
}

// RegisterRequest carries the ID token plus initial display fields
type RegisterRequest struct {
	Token       string `json:"token" binding:"required,min=20"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=50"`
}

// ProfileResponse is the authenticated user's profile view
type ProfileResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DisplayName     string `json:"display_name"`
	Role            string `json:"role"`
	IntendedRole    string `json:"intended_role"`
	TeamID          string `json:"team_id,omitempty"`
	Status          string `json:"status"`
	IsFirstManager  bool   `json:"is_first_manager"`
	IsSetupComplete bool   `json:"is_setup_complete"`
}
