package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Account is the subset of a Mastodon account used to page its statuses.
type Account struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Acct          string `json:"acct"`
	StatusesCount int    `json:"statuses_count"`
}

// SearchResult is the body of GET /api/v2/search.
type SearchResult struct {
	Accounts []Account `json:"accounts"`
}

// StatusID is a status identifier. Mastodon sends it as a JSON string, some
// compatible servers as a number; both decode to the same value.
type StatusID int64

func (id *StatusID) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid status id %s: %w", data, err)
	}
	*id = StatusID(n)
	return nil
}

// Status is one post from an account timeline.
type Status struct {
	ID      StatusID        `json:"id"`
	Content json.RawMessage `json:"content"`
}

// Markup returns the HTML content of the status. A missing, null or
// non-string content field yields ok == false.
func (s Status) Markup() (string, bool) {
	if len(s.Content) == 0 || bytes.Equal(s.Content, []byte("null")) {
		return "", false
	}
	var content string
	if err := json.Unmarshal(s.Content, &content); err != nil {
		return "", false
	}
	return content, true
}
