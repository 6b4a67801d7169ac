package membership

// SetRoleRequest is the payload for choosing an intended role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,clubrole"`
}

// SnapshotResponse is the membership lifecycle view returned to clients
type SnapshotResponse struct {
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	AvatarURL       string `json:"avatar_url"`
	Role            string `json:"role"`
	IntendedRole    string `json:"intended_role"`
	TeamID          string `json:"team_id,omitempty"`
	Status          string `json:"status"`
	IsFirstManager  bool   `json:"is_first_manager"`
	IsSetupComplete bool   `json:"is_setup_complete"`
	IsLoading       bool   `json:"is_loading"`
	IsInitialized   bool   `json:"is_initialized"`
	Error           string `json:"error,omitempty"`
}

// RouteResponse tells a client which screen its lifecycle state maps to
type RouteResponse struct {
	State string `json:"state"`
	Route string `json:"route"`
}
