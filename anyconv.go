package jsonkit

import (
	json "github.com/goccy/go-json"
)

// FromAny converts an arbitrary Go value by marshaling it with
// goccy/go-json and reparsing the text through this parser, so numeric
// classification follows the same rules as wire input.
func FromAny(o any) (*Value, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// As decodes a Value into dst (a pointer) via goccy/go-json, using the
// canonical rendering as the intermediate form.
func As(v *Value, dst any) error {
	return json.Unmarshal(v.AppendJSON(nil), dst)
}
