// Package telegram reads the identity material the Mini App host hands
// to the webview. The raw init data string goes to the backend verbatim
// for the auth exchange (the HMAC check is the backend's job); parsing
// it locally covers display identity and staleness hints.
package telegram

import (
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// User is the host-provided account behind the webview.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// InitData is the decoded launch payload.
type InitData struct {
	Raw      string
	QueryID  string
	User     *User
	AuthDate time.Time
	Hash     string
}

// ParseInitData decodes the query-string shaped init data. The raw
// string is kept untouched for the backend exchange.
func ParseInitData(raw string) (InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return InitData{}, errors.Wrap(err, "init data is not a query string")
	}

	data := InitData{
		Raw:     raw,
		QueryID: values.Get("query_id"),
		Hash:    values.Get("hash"),
	}
	if data.Hash == "" {
		return InitData{}, errors.New("init data is missing its hash")
	}

	if userJSON := values.Get("user"); userJSON != "" {
		user := &User{}
		if err := json.Unmarshal([]byte(userJSON), user); err != nil {
			return InitData{}, errors.Wrap(err, "init data user record")
		}
		data.User = user
	}

	if ts := values.Get("auth_date"); ts != "" {
		unix, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return InitData{}, errors.Wrap(err, "init data auth_date")
		}
		data.AuthDate = time.Unix(unix, 0)
	}

	return data, nil
}

// StaleAfter reports whether the payload is older than maxAge and
// should be refreshed by reopening the Mini App before exchanging it.
func (d InitData) StaleAfter(maxAge time.Duration) bool {
	if d.AuthDate.IsZero() {
		return true
	}
	return time.Since(d.AuthDate) > maxAge
}

// DisplayName is the best human-readable name available.
func (d InitData) DisplayName() string {
	if d.User == nil {
		return ""
	}
	name := d.User.FirstName
	if d.User.LastName != "" {
		name += " " + d.User.LastName
	}
	if name == "" {
		name = d.User.Username
	}
	return name
}
