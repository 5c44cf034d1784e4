package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeFixture(t *testing.T, body string) *ExecuteResponse {
	t.Helper()
	var resp ExecuteResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestNormalizeLiftsFromStoredResponse(t *testing.T) {
	resp := executeFixture(t, `{
		"session": {"id":"s-1","status":"executed"},
		"result": {
			"id":"r-1","session_id":"s-1","items_count":2,
			"hh_response_json": {
				"items":[{"id":"101"},{"id":"102"}],
				"found":37,"pages":2,"page":0,"per_page":20
			}
		}
	}`)

	NormalizeExecute(resp)

	require.Len(t, resp.Items, 2)
	require.NotNil(t, resp.Found)
	assert.Equal(t, 37, *resp.Found)
	require.NotNil(t, resp.Pages)
	assert.Equal(t, 2, *resp.Pages)
	require.NotNil(t, resp.Page)
	assert.Equal(t, 0, *resp.Page)
	assert.Nil(t, resp.PerPage, "per_page is not lifted")
}

func TestNormalizeKeepsTopLevelFields(t *testing.T) {
	resp := executeFixture(t, `{
		"items":[{"id":"top"}],
		"found": 1,
		"result": {"hh_response_json":{"items":[{"id":"inner"},{"id":"inner2"}],"found":99}}
	}`)

	NormalizeExecute(resp)

	require.Len(t, resp.Items, 1)
	var item map[string]string
	require.NoError(t, json.Unmarshal(resp.Items[0], &item))
	assert.Equal(t, "top", item["id"])
	assert.Equal(t, 1, *resp.Found)
}

func TestNormalizeIdempotent(t *testing.T) {
	resp := executeFixture(t, `{
		"result": {"hh_response_json":{"items":[{"id":"101"}],"found":5,"pages":1,"page":0}}
	}`)

	NormalizeExecute(resp)
	first, err := json.Marshal(resp)
	require.NoError(t, err)

	NormalizeExecute(resp)
	second, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestNormalizeEmptyStoredItems(t *testing.T) {
	resp := executeFixture(t, `{
		"result": {"hh_response_json":{"items":[],"found":0,"pages":0,"page":0}}
	}`)

	NormalizeExecute(resp)

	require.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, *resp.Found)
}

func TestNormalizeToleratesMissingOrBrokenData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no result", `{"session":{"id":"s-1"}}`},
		{"empty stored response", `{"result":{"hh_response_json":{}}}`},
		{"items not an array", `{"result":{"hh_response_json":{"items":"nope"}}}`},
		{"items null", `{"result":{"hh_response_json":{"items":null}}}`},
		{"stored response not an object", `{"result":{"hh_response_json":[1,2,3]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := executeFixture(t, tt.body)
			NormalizeExecute(resp)
			assert.Nil(t, resp.Items)
			assert.Nil(t, resp.Found)
		})
	}
}

func TestNormalizeSkipsNonNumericCounters(t *testing.T) {
	resp := executeFixture(t, `{
		"result": {"hh_response_json":{"items":[{"id":"1"}],"found":"many","pages":3}}
	}`)

	NormalizeExecute(resp)

	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Found)
	require.NotNil(t, resp.Pages)
	assert.Equal(t, 3, *resp.Pages)
}
