package team

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque identifier. The event API emits both string ids
// (document ids) and numeric ids, so ID decodes from either.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Team is a participant group as served by GET /event/students.
type Team struct {
	ID       ID     `json:"_id" validate:"required"`
	Name     string `json:"teamname" validate:"required"`
	Email    string `json:"email,omitempty"`
	Verified bool   `json:"verified"`
	Sector   string `json:"Sector,omitempty"`
	// Domain is the assigned domain name; empty means unassigned.
	Domain string `json:"Domain,omitempty"`
}

// HasDomain reports whether the team has a domain assigned.
func (t Team) HasDomain() bool { return t.Domain != "" }

// Domain is a catalog entry as served by GET /domains.
type Domain struct {
	ID   ID     `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Counts is the verification tally of a team list.
// Verified+Pending always equals Total.
type Counts struct {
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Total    int `json:"total"`
}

// CountTeams partitions teams on the verification flag.
func CountTeams(teams []Team) Counts {
	c := Counts{Total: len(teams)}
	for _, t := range teams {
		if t.Verified {
			c.Verified++
		}
	}
	c.Pending = c.Total - c.Verified
	return c
}
