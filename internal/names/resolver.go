// Package names resolves team names to IDs so commands accept either.
// Matching priority:
// 1. UUID passthrough
// 2. Exact match (case-sensitive)
// 3. Case-insensitive match
// 4. Partial match (contains), if unique
package names

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/RK-HR-org/rsq/internal/api"
	"github.com/RK-HR-org/rsq/internal/models"
	"github.com/RK-HR-org/rsq/internal/output"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Resolver resolves team names to IDs.
type Resolver struct {
	client *api.Client

	// Session-scoped cache
	mu    sync.Mutex
	teams []models.TeamRef
}

// NewResolver creates a new name resolver.
func NewResolver(client *api.Client) *Resolver {
	return &Resolver{client: client}
}

// ResolveTeam resolves a team name or ID to an ID.
// Returns the ID and the team name for display.
func (r *Resolver) ResolveTeam(ctx context.Context, input string) (string, string, error) {
	if uuidPattern.MatchString(input) {
		return input, "", nil
	}

	teams, err := r.getTeams(ctx)
	if err != nil {
		return "", "", err
	}

	// Exact ID or name match
	for _, t := range teams {
		if t.ID == input || t.Name == input {
			return t.ID, t.Name, nil
		}
	}

	// Case-insensitive match
	var ciMatches []models.TeamRef
	for _, t := range teams {
		if strings.EqualFold(t.Name, input) {
			ciMatches = append(ciMatches, t)
		}
	}
	if len(ciMatches) == 1 {
		return ciMatches[0].ID, ciMatches[0].Name, nil
	}

	// Partial match, only when unambiguous
	if len(ciMatches) == 0 {
		lower := strings.ToLower(input)
		for _, t := range teams {
			if strings.Contains(strings.ToLower(t.Name), lower) {
				ciMatches = append(ciMatches, t)
			}
		}
		if len(ciMatches) == 1 {
			return ciMatches[0].ID, ciMatches[0].Name, nil
		}
	}

	if len(ciMatches) > 1 {
		matchNames := make([]string, len(ciMatches))
		for i, t := range ciMatches {
			matchNames[i] = t.Name
		}
		return "", "", output.ErrUsageHint(
			"Team name "+input+" is ambiguous",
			"Matches: "+strings.Join(matchNames, ", "))
	}

	return "", "", output.ErrNotFound("Team", input)
}

// ClearCache drops the cached team list.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = nil
}

func (r *Resolver) getTeams(ctx context.Context) ([]models.TeamRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.teams != nil {
		return r.teams, nil
	}

	resp, err := r.client.Get(ctx, "/v1/team", nil)
	if err != nil {
		return nil, err
	}
	var teams []models.TeamRef
	if err := resp.UnmarshalData(&teams); err != nil {
		return nil, err
	}
	r.teams = teams
	return teams, nil
}
