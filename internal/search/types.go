// Package search implements the search session lifecycle: draft sessions are
// enriched, approved, and executed against the upstream job board, and the
// stored results are browsed as items.
package search

import "encoding/json"

// Search modes.
const (
	ModeResumes   = "resumes"
	ModeVacancies = "vacancies"
)

// Session statuses. Transitions are decided by the backend; the client only
// uses these to phrase hints and summaries.
const (
	StatusDraft    = "draft"
	StatusEnriched = "enriched"
	StatusApproved = "approved"
	StatusExecuted = "executed"
	StatusFailed   = "failed"
)

// Statuses lists the lifecycle states in order, for completion.
var Statuses = []string{StatusDraft, StatusEnriched, StatusApproved, StatusExecuted, StatusFailed}

// CanApprove reports whether a session in the given status is expected to
// accept an approve call. Only enriched sessions approve; advisory only,
// the backend has the final say.
func CanApprove(status string) bool {
	return status == StatusEnriched
}

// CanExecute reports whether a session in the given status is expected to
// accept an execute call. Executed sessions may be re-executed for paging.
func CanExecute(status string) bool {
	return status == StatusApproved || status == StatusExecuted
}

// Session is a search session as returned by the API.
type Session struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	TeamID        string          `json:"team_id"`
	Mode          string          `json:"mode"`
	QueryRaw      json.RawMessage `json:"query_raw,omitempty"`
	QueryEnriched json.RawMessage `json:"query_enriched,omitempty"`
	HHRequest     json.RawMessage `json:"hh_request,omitempty"`
	Status        string          `json:"status"`
	ApprovedBy    string          `json:"approved_by,omitempty"`
	ApprovedAt    string          `json:"approved_at,omitempty"`
	ExecutedAt    string          `json:"executed_at,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	Results       []Result        `json:"results,omitempty"`
}

// SessionList is a paginated list of sessions.
type SessionList struct {
	Items  []Session `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Prompts steer the AI enrichment step.
type Prompts struct {
	Positive string `json:"positive,omitempty"`
	Negative string `json:"negative,omitempty"`
}

// CreateRequest is the body for POST /v1/search/sessions.
type CreateRequest struct {
	TeamID     string          `json:"team_id"`
	Mode       string          `json:"mode"`
	SearchType string          `json:"searchType,omitempty"`
	QueryRaw   json.RawMessage `json:"queryRaw,omitempty"`
	Filters    json.RawMessage `json:"filters,omitempty"`
	Prompts    *Prompts        `json:"prompts,omitempty"`
}

// EnrichRequest is the body for POST /v1/search/sessions/{id}/enrich.
type EnrichRequest struct {
	Prompts Prompts         `json:"prompts"`
	Filters json.RawMessage `json:"filters,omitempty"`
}

// Diff describes what the enrichment changed.
type Diff struct {
	Added    []string `json:"added,omitempty"`
	Changed  []string `json:"changed,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// EnrichResponse is returned by enrich, and by create when prompts were given.
type EnrichResponse struct {
	SessionID       string          `json:"session_id"`
	EnrichedFilters json.RawMessage `json:"enriched_filters"`
	Diff            Diff            `json:"diff"`
}

// CreateOutcome holds the result of a create call, which returns either the
// new session or an enrichment response when prompts were supplied.
type CreateOutcome struct {
	Session *Session
	Enrich  *EnrichResponse
}

// SessionID returns the created session's ID regardless of response shape.
func (o *CreateOutcome) SessionID() string {
	if o.Enrich != nil {
		return o.Enrich.SessionID
	}
	if o.Session != nil {
		return o.Session.ID
	}
	return ""
}

// ApproveRequest optionally pins the exact upstream request to run.
type ApproveRequest struct {
	HHRequest json.RawMessage `json:"hh_request,omitempty"`
}

// ExecuteRequest selects the upstream result page.
type ExecuteRequest struct {
	Page int `json:"page,omitempty"`
}

// Result is a stored upstream response snapshot.
type Result struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"session_id"`
	HHResponse json.RawMessage `json:"hh_response_json,omitempty"`
	ItemsCount int             `json:"items_count"`
	Found      *int            `json:"hh_found,omitempty"`
	FetchedAt  string          `json:"fetched_at,omitempty"`
}

// ExecuteResponse is the outcome of running a search. Counter fields are
// pointers so a missing value is distinguishable from zero.
type ExecuteResponse struct {
	Session *Session          `json:"session,omitempty"`
	Result  *Result           `json:"result,omitempty"`
	Items   []json.RawMessage `json:"items,omitempty"`
	Found   *int              `json:"found,omitempty"`
	Pages   *int              `json:"pages,omitempty"`
	PerPage *int              `json:"per_page,omitempty"`
	Page    *int              `json:"page,omitempty"`
}

// Item is a single stored result entry (resume or vacancy).
type Item struct {
	ID         string          `json:"id"`
	HHID       string          `json:"hh_id"`
	ItemType   string          `json:"item_type,omitempty"`
	IsFavorite *bool           `json:"is_favorite,omitempty"`
	IsHidden   *bool           `json:"is_hidden,omitempty"`
	RawData    json.RawMessage `json:"raw_data,omitempty"`
	FullData   json.RawMessage `json:"full_data,omitempty"`
	ResultID   string          `json:"result_id,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	Title      string          `json:"title,omitempty"`
}

// ItemList is a paginated list of session items.
type ItemList struct {
	Items  []Item `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ItemUpdate is the body for PATCH on an item. Nil fields are left untouched.
type ItemUpdate struct {
	IsFavorite *bool `json:"is_favorite,omitempty"`
	IsHidden   *bool `json:"is_hidden,omitempty"`
}
