// Package models holds the API resource types shared across commands.
package models

// RoleRef is the compact role reference embedded in user payloads.
type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamRef is the compact team reference embedded in user payloads.
type TeamRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsManager bool   `json:"is_manager,omitempty"`
}

// User statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
	UserBlocked  = "blocked"
)

// User is a platform account as returned by /v1/auth/me and /v1/user.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      RoleRef   `json:"role"`
	Status    string    `json:"status"`
	Teams     []TeamRef `json:"teams"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// DisplayName returns a human-readable name, falling back to the email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// UserCreate is the body for POST /v1/auth/register.
type UserCreate struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	RoleID    string   `json:"role_id"`
	TeamIDs   []string `json:"team_ids,omitempty"`
}

// UserUpdate is the body for PATCH /v1/user/{id}. Nil fields are omitted.
type UserUpdate struct {
	Email     *string  `json:"email,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	RoleID    *string  `json:"role_id,omitempty"`
	Status    *string  `json:"status,omitempty"`
	TeamIDs   []string `json:"team_ids,omitempty"`
}

// Role is a full role object from /v1/role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsSystem    bool   `json:"is_system,omitempty"`
}

// Team is a full team object from /v1/team.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Permission types accepted by the role and team permission endpoints.
const (
	PermAddUsers              = "add_users"
	PermEditUsers             = "edit_users"
	PermDeleteUsers           = "delete_users"
	PermViewUsersList         = "view_users_list"
	PermViewUserDetails       = "view_user_details"
	PermViewTeamsList         = "view_teams_list"
	PermViewTeamDetails       = "view_team_details"
	PermExecuteSearch         = "execute_hh_search"
	PermManageTeamPermissions = "manage_team_permissions"
	PermManageTeamQuotas      = "manage_team_quotas"
)

// PermissionTypes lists every known permission type, for completion and
// client-side validation hints.
var PermissionTypes = []string{
	PermAddUsers,
	PermEditUsers,
	PermDeleteUsers,
	PermViewUsersList,
	PermViewUserDetails,
	PermViewTeamsList,
	PermViewTeamDetails,
	PermExecuteSearch,
	PermManageTeamPermissions,
	PermManageTeamQuotas,
}

// Permission is a single granted permission on a role or team.
type Permission struct {
	ID             string `json:"id"`
	PermissionType string `json:"permission_type"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// RolePermissions is the response of GET /v1/role/{id}/permissions.
type RolePermissions struct {
	RoleID      string       `json:"role_id"`
	RoleName    string       `json:"role_name"`
	Permissions []Permission `json:"permissions"`
}

// TeamPermissions is the response of GET /v1/team/{id}/permissions.
type TeamPermissions struct {
	TeamID      string       `json:"team_id"`
	TeamName    string       `json:"team_name"`
	Permissions []Permission `json:"permissions"`
}

// QuotaUsage aggregates request counts over a window.
type QuotaUsage struct {
	RequestsTotal   int `json:"requests_total"`
	RequestsSuccess int `json:"requests_success"`
	Requests429     int `json:"requests_429"`
}

// QuotaWindow is the used/limit/remaining triple for one window.
type QuotaWindow struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// QuotaLimits is a team's configured rate limits.
type QuotaLimits struct {
	ID              string `json:"id"`
	TeamID          string `json:"team_id"`
	RequestsPerHour int    `json:"requests_per_hour"`
	RequestsPerDay  int    `json:"requests_per_day"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// QuotaLimitsUpdate is the body for PUT /v1/quota/limits/{team_id}.
type QuotaLimitsUpdate struct {
	RequestsPerHour int `json:"requests_per_hour"`
	RequestsPerDay  int `json:"requests_per_day"`
}

// RemainingQuota is the response of GET /v1/quota/remaining/{team_id}.
type RemainingQuota struct {
	TeamID         string       `json:"team_id"`
	HasLimits      bool         `json:"has_limits"`
	Hour           *QuotaWindow `json:"hour,omitempty"`
	Day            *QuotaWindow `json:"day,omitempty"`
	CanMakeRequest bool         `json:"can_make_request"`
}

// TeamQuota is per-team quota state with recent usage.
type TeamQuota struct {
	TeamID        string         `json:"team_id"`
	TeamName      string         `json:"team_name"`
	Limits        *QuotaLimits   `json:"limits,omitempty"`
	UsageLastHour QuotaUsage     `json:"usage_last_hour"`
	UsageLastDay  QuotaUsage     `json:"usage_last_day"`
	RateLimit     map[string]any `json:"hh_rate_limit,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// UserQuota is the current user's quota view across their teams.
type UserQuota struct {
	UserID        string      `json:"user_id"`
	Email         string      `json:"email"`
	UsageLastHour QuotaUsage  `json:"usage_last_hour"`
	UsageLastDay  QuotaUsage  `json:"usage_last_day"`
	Teams         []TeamQuota `json:"teams"`
}

// QuotaHistoryEntry is one recorded usage window.
type QuotaHistoryEntry struct {
	ID              string `json:"id"`
	TeamID          string `json:"team_id"`
	TeamName        string `json:"team_name,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	UserEmail       string `json:"user_email,omitempty"`
	WindowStart     string `json:"window_start"`
	WindowEnd       string `json:"window_end"`
	WindowType      string `json:"window_type"`
	RequestsTotal   int    `json:"requests_total"`
	RequestsSuccess int    `json:"requests_success"`
	Requests429     int    `json:"requests_429"`
	RecordedAt      string `json:"recorded_at"`
}

// HHStatus reports whether the upstream job-board account is connected.
type HHStatus struct {
	Connected        bool   `json:"connected"`
	ExpiresAt        string `json:"expires_at,omitempty"`
	ExpiresInSeconds *int   `json:"expires_in_seconds,omitempty"`
}

// HHAuthURL is the OAuth authorization URL to open in a browser.
type HHAuthURL struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// HHBalance is the upstream account balance in rubles.
type HHBalance struct {
	Balance float64 `json:"balance,omitempty"`
	Actual  float64 `json:"actual,omitempty"`
	Initial float64 `json:"initial,omitempty"`
}
