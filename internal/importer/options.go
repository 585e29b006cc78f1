package importer

import (
	"encoding/json"
	"strings"
)

// parseOptions reads an options cell: a JSON array, or values separated by
// "|" or newlines.
func parseOptions(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var opts []string
		if err := json.Unmarshal([]byte(s), &opts); err == nil {
			return opts
		}
	}
	sep := "|"
	if !strings.Contains(s, sep) {
		sep = "\n"
	}
	var opts []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			opts = append(opts, part)
		}
	}
	return opts
}

// flexOptions accepts an options array or a string holding one
type flexOptions []string

func (o *flexOptions) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*o = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*o = parseOptions(s)
	return nil
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
