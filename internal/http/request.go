// Request parsing helpers: path/query identifiers, JSON bodies, amounts,
// dates, and pagination parameters.

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 20 // 1MB

// amountField accepts a monetary amount given either as a JSON number or a
// decimal string.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = amountField(str)
		return nil
	}
	*a = amountField(s)
	return nil
}

func (a amountField) Cents() (int64, error) {
	return core.ParseDecimalToCents(string(a))
}

// decodeJSON parses a bounded JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", core.ErrValidation)
	}
	return nil
}

// pathID extracts a positive numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	v := r.PathValue(name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, core.ErrValidation)
	}
	return id, nil
}

// queryUserID extracts the required userId query parameter. A missing or
// malformed value is a validation failure, never a 404.
func queryUserID(r *http.Request) (int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get("userId"))
	if v == "" {
		return 0, fmt.Errorf("missing userId: %w", core.ErrValidation)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid userId %q: %w", v, core.ErrValidation)
	}
	return id, nil
}

// bodyOrQueryUserID prefers the userId query parameter, falling back to the
// body field; one of the two must carry a positive id.
func bodyOrQueryUserID(r *http.Request, bodyUserID int64) (int64, error) {
	if strings.TrimSpace(r.URL.Query().Get("userId")) != "" {
		return queryUserID(r)
	}
	if bodyUserID > 0 {
		return bodyUserID, nil
	}
	return 0, fmt.Errorf("missing userId: %w", core.ErrValidation)
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(dateStr string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, core.ErrValidation)
	}
	return t, nil
}

// parsePageRequest extracts page/size/sort query parameters. Page numbers are
// zero-based; size is clamped to the configured maximum; sort follows the
// "column,direction" convention, defaulting to transaction date descending.
func parsePageRequest(query url.Values, defaults PageDefaults) core.PageRequest {
	req := core.PageRequest{
		Page:   0,
		Size:   defaults.Size,
		SortBy: "txnDate",
		Desc:   true,
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 0 {
			req.Page = p
		}
	}
	if v := strings.TrimSpace(query.Get("size")); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			req.Size = s
		}
	}
	if req.Size > defaults.MaxSize {
		req.Size = defaults.MaxSize
	}

	if v := strings.TrimSpace(query.Get("sort")); v != "" {
		parts := strings.SplitN(v, ",", 2)
		req.SortBy = parts[0]
		req.Desc = len(parts) == 2 && strings.EqualFold(parts[1], "desc")
	}

	return req
}
