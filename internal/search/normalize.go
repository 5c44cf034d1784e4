package search

import "encoding/json"

// NormalizeExecute lifts items and counters out of the stored upstream
// response when the backend did not flatten them into the top level. Fields
// already set are never overwritten, so applying it twice is a no-op.
func NormalizeExecute(resp *ExecuteResponse) {
	if resp == nil || resp.Items != nil {
		return
	}
	if resp.Result == nil || len(resp.Result.HHResponse) == 0 {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(resp.Result.HHResponse, &raw); err != nil {
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw["items"], &items); err != nil || items == nil {
		return
	}
	resp.Items = items

	if resp.Found == nil {
		resp.Found = intField(raw, "found")
	}
	if resp.Pages == nil {
		resp.Pages = intField(raw, "pages")
	}
	if resp.Page == nil {
		resp.Page = intField(raw, "page")
	}
}

// intField extracts a numeric field, ignoring absent or non-numeric values.
func intField(raw map[string]json.RawMessage, name string) *int {
	data, ok := raw[name]
	if !ok {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	v := int(n)
	return &v
}
