package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/RK-HR-org/rsq/internal/api"
)

// Client is the typed search session client.
type Client struct {
	api *api.Client
}

// NewClient wraps the transport.
func NewClient(transport *api.Client) *Client {
	return &Client{api: transport}
}

// PageOpts selects a slice of a paginated list.
type PageOpts struct {
	Limit  int
	Offset int
}

func (p PageOpts) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	return q
}

// Create starts a new session. With prompts the backend enriches immediately
// and answers with the enrichment, otherwise with the draft session.
func (c *Client) Create(ctx context.Context, req *CreateRequest) (*CreateOutcome, error) {
	resp, err := c.api.Post(ctx, "/v1/search/sessions", req)
	if err != nil {
		return nil, err
	}

	var probe struct {
		EnrichedFilters json.RawMessage `json:"enriched_filters"`
	}
	if err := resp.UnmarshalData(&probe); err != nil {
		return nil, fmt.Errorf("parsing create response: %w", err)
	}

	outcome := &CreateOutcome{}
	if probe.EnrichedFilters != nil {
		outcome.Enrich = &EnrichResponse{}
		if err := resp.UnmarshalData(outcome.Enrich); err != nil {
			return nil, fmt.Errorf("parsing enrichment: %w", err)
		}
	} else {
		outcome.Session = &Session{}
		if err := resp.UnmarshalData(outcome.Session); err != nil {
			return nil, fmt.Errorf("parsing session: %w", err)
		}
	}
	return outcome, nil
}

// Enrich runs AI enrichment on a draft session.
func (c *Client) Enrich(ctx context.Context, sessionID string, req *EnrichRequest) (*EnrichResponse, error) {
	resp, err := c.api.Post(ctx, "/v1/search/sessions/"+sessionID+"/enrich", req)
	if err != nil {
		return nil, err
	}
	var out EnrichResponse
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing enrichment: %w", err)
	}
	return &out, nil
}

// Approve marks the session ready for execution.
func (c *Client) Approve(ctx context.Context, sessionID string, req *ApproveRequest) (*Session, error) {
	if req == nil {
		req = &ApproveRequest{}
	}
	resp, err := c.api.Post(ctx, "/v1/search/sessions/"+sessionID+"/approve", req)
	if err != nil {
		return nil, err
	}
	var session Session
	if err := resp.UnmarshalData(&session); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &session, nil
}

// Execute runs the approved search. The response is normalized so callers
// always see items and counters at the top level.
func (c *Client) Execute(ctx context.Context, sessionID string, req *ExecuteRequest) (*ExecuteResponse, error) {
	if req == nil {
		req = &ExecuteRequest{}
	}
	resp, err := c.api.Post(ctx, "/v1/search/sessions/"+sessionID+"/execute", req)
	if err != nil {
		return nil, err
	}
	var out ExecuteResponse
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing execute response: %w", err)
	}
	NormalizeExecute(&out)
	return &out, nil
}

// Get fetches a session, optionally with its stored results.
func (c *Client) Get(ctx context.Context, sessionID string, withResults bool) (*Session, error) {
	q := url.Values{}
	if withResults {
		q.Set("with_results", "true")
	}
	resp, err := c.api.Get(ctx, "/v1/search/sessions/"+sessionID, q)
	if err != nil {
		return nil, err
	}
	var session Session
	if err := resp.UnmarshalData(&session); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &session, nil
}

// ListMine lists the current user's sessions.
func (c *Client) ListMine(ctx context.Context, page PageOpts) (*SessionList, error) {
	return c.list(ctx, "/v1/search/sessions", page)
}

// ListTeam lists a team's sessions.
func (c *Client) ListTeam(ctx context.Context, teamID string, page PageOpts) (*SessionList, error) {
	return c.list(ctx, "/v1/search/teams/"+teamID+"/sessions", page)
}

func (c *Client) list(ctx context.Context, path string, page PageOpts) (*SessionList, error) {
	resp, err := c.api.Get(ctx, path, page.query())
	if err != nil {
		return nil, err
	}
	var out SessionList
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing session list: %w", err)
	}
	return &out, nil
}

// Delete removes a session.
func (c *Client) Delete(ctx context.Context, sessionID string) error {
	_, err := c.api.Delete(ctx, "/v1/search/sessions/"+sessionID)
	return err
}

// ItemOpts selects a slice of a session's items.
type ItemOpts struct {
	Limit         int
	Offset        int
	IncludeHidden bool
}

// Items lists a session's stored result entries.
func (c *Client) Items(ctx context.Context, sessionID string, opts ItemOpts) (*ItemList, error) {
	q := PageOpts{Limit: opts.Limit, Offset: opts.Offset}.query()
	if opts.IncludeHidden {
		q.Set("include_hidden", "true")
	}
	resp, err := c.api.Get(ctx, "/v1/search/sessions/"+sessionID+"/items", q)
	if err != nil {
		return nil, err
	}
	var out ItemList
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing item list: %w", err)
	}
	return &out, nil
}

// Item fetches one entry with its cached full data when present.
func (c *Client) Item(ctx context.Context, sessionID, itemID string) (*Item, error) {
	resp, err := c.api.Get(ctx, "/v1/search/sessions/"+sessionID+"/items/"+itemID, nil)
	if err != nil {
		return nil, err
	}
	var out Item
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing item: %w", err)
	}
	return &out, nil
}

// UpdateItem patches an entry's favorite/hidden flags.
func (c *Client) UpdateItem(ctx context.Context, sessionID, itemID string, req *ItemUpdate) (*Item, error) {
	resp, err := c.api.Patch(ctx, "/v1/search/sessions/"+sessionID+"/items/"+itemID, req)
	if err != nil {
		return nil, err
	}
	var out Item
	if err := resp.UnmarshalData(&out); err != nil {
		return nil, fmt.Errorf("parsing item: %w", err)
	}
	return &out, nil
}
