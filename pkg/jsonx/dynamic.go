package jsonx

import json "github.com/goccy/go-json"

// ToDynamicJSON converts val into its generic map representation by round
// tripping it through JSON. Useful for handing structured schemas to SDKs
// that only accept map[string]any.
func ToDynamicJSON(val any) (map[string]any, error) {
	result := make(map[string]any)
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return result, nil
}
