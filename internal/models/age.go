package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Age is a participant's age as the form sends it. Numbers and numeric
// strings are read as whole years; null, "" and anything else read as 0.
type Age int

func (a *Age) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*a = 0
	switch n := v.(type) {
	case float64:
		*a = Age(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			*a = Age(f)
		}
	}
	return nil
}

// Schema leaves the type open so a bad age never rejects the submission.
func (Age) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Age in years as a number or numeric string; anything else is stored as 0",
		Nullable:    true,
		Examples:    []any{40},
	}
}
