package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// PathInt64 reads a positive integer mux variable
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryInt reads an optional integer query parameter
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &n, nil
}

// QueryDate reads an optional YYYY-MM-DD query parameter in loc
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return &d, nil
}

// QueryBool reads an optional boolean query parameter; anything but true/1 is false
func QueryBool(r *http.Request, name string) bool {
	v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	return v == "true" || v == "1"
}
