package team

// CreateRequest is the payload for founding a team
type CreateRequest struct {
	Name        string `json:"name" binding:"required,teamname"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// CreateResponse carries the id of the newly founded team
type CreateResponse struct {
	TeamID string `json:"team_id"`
}

// UpdateMemberRoleRequest is the payload for changing a member's role
type UpdateMemberRoleRequest struct {
	CurrentRole string `json:"current_role" binding:"required,clubrole"`
	NewRole     string `json:"new_role" binding:"required,clubrole"`
}

// Response is the team data returned in API responses
type Response struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	HasFirstManager bool   `json:"has_first_manager"`
	MemberCount     int    `json:"member_count"`
}

// MemberResponse is the roster view of one member
type MemberResponse struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
	IntendedRole string `json:"intended_role"`
	Status       string `json:"status"`
}
