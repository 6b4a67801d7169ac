package membership

import "context"

// Session identifies the authenticated user behind a store.
type Session struct {
	UserID string
	Email  string
}

// AuthEvent is an asynchronous authorization event delivered by the AuthPort.
type AuthEvent string

const (
	EventSignedIn    AuthEvent = "SIGNED_IN"
	EventSignedOut   AuthEvent = "SIGNED_OUT"
	EventUserUpdated AuthEvent = "USER_UPDATED"
)

// Unsubscribe tears down an auth-event subscription.
type Unsubscribe func()

// ProfileRecord is the full lifecycle view of one user's profile.
type ProfileRecord struct {
	ID              string
	DisplayName     string
	AvatarURL       string
	Role            Role
	IntendedRole    Role
	TeamID          string
	Status          Status
	IsFirstManager  bool
	IsSetupComplete bool
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// A non-nil TeamID pointing at an empty string clears the team linkage.
type ProfilePatch struct {
	DisplayName     *string
	AvatarURL       *string
	Role            *Role
	IntendedRole    *Role
	TeamID          *string
	Status          *Status
	IsFirstManager  *bool
	IsSetupComplete *bool
}

// TeamRecord is the lifecycle view of a team.
type TeamRecord struct {
	ID              string
	Name            string
	Description     string
	HasFirstManager bool
	MemberCount     int
}

// TeamDetails carries the fields a caller supplies when founding a team.
type TeamDetails struct {
	Name        string
	Description string
}

// TeamFlagPatch is a partial team update. Nil fields are left untouched.
type TeamFlagPatch struct {
	HasFirstManager *bool
	MemberCount     *int
}

// AuthPort is the session/credential backend for a single user. Implemented
// by the Firebase-backed adapter in production and by fakes in tests.
type AuthPort interface {
	// GetSession returns the current session, or nil when anonymous.
	GetSession(ctx context.Context) (*Session, error)
	// GetFullProfile loads the complete profile for a user, nil when missing.
	GetFullProfile(ctx context.Context, userID string) (*ProfileRecord, error)
	// UpdateProfile persists a partial update to the user's own profile.
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error
	// OnAuthStateChange subscribes to auth events for this user.
	OnAuthStateChange(cb func(event AuthEvent, session *Session)) Unsubscribe
}

// DirectoryPort is the relational access to teams and other members'
// profiles that the lifecycle mutators need.
type DirectoryPort interface {
	// TeamByID returns a team, or ErrNotFound.
	TeamByID(ctx context.Context, teamID string) (*TeamRecord, error)
	// OfficerHolder returns the approved holder of an office on a team,
	// or nil when the office is vacant.
	OfficerHolder(ctx context.Context, teamID string, office Role) (*ProfileRecord, error)
	// DemoteToAdmin moves a profile out of its office.
	DemoteToAdmin(ctx context.Context, profileID string) error
	// InsertTeam creates a team and returns it.
	InsertTeam(ctx context.Context, details TeamDetails) (*TeamRecord, error)
	// UpdateTeamFlags persists a partial team update.
	UpdateTeamFlags(ctx context.Context, teamID string, patch TeamFlagPatch) error
	// ProfileByID returns another member's profile, or ErrNotFound.
	ProfileByID(ctx context.Context, profileID string) (*ProfileRecord, error)
	// UpdateProfileFields persists a partial update to another member's profile.
	UpdateProfileFields(ctx context.Context, profileID string, patch ProfilePatch) error
}
