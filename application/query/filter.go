// Package query turns loosely typed request parameters into canonical,
// validated predicates, sort keys, and page windows. Repositories translate
// these into SQL; nothing here touches the database.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
)

// Pagination defaults and bounds.
const (
	DefaultProductLimit = 50
	DefaultAuditLimit   = 20
	MaxLimit            = 200
)

// ProductFilter is the canonical predicate over product records.
//
// Search takes precedence: when non-empty it matches any of brand, sku,
// category, or description as a case-insensitive substring, and Brand and
// Category are guaranteed empty. Without search, Brand and Category are
// independent case-insensitive exact matches.
type ProductFilter struct {
	Search   string
	Brand    string
	Category string
}

// AuditFilter is the canonical predicate over audit entries. Unlike the
// product filter, Search combines conjunctively with the other fields and
// only matches brand or sku as a case-insensitive substring.
type AuditFilter struct {
	Search     string
	Brand      string
	SKU        string
	ActionType string
	ActorID    string
	From       *time.Time
	To         *time.Time
}

// Sort is a validated sort key plus direction.
type Sort struct {
	Field string
	Desc  bool
}

// Page is a validated page window.
type Page struct {
	Page  int
	Limit int
}

// Offset computes the number of records to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages computes the total page count for a result set of the given size.
func (p Page) Pages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}

// ProductSortColumns maps accepted sort parameters to store columns.
var ProductSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"brand":     "brand",
	"sku":       "sku",
	"category":  "category",
	"inventory": "inventory",
	"price":     "price",
}

// AuditSortColumns maps accepted audit sort parameters to store columns.
// "timestamp" is an accepted alias for creation time.
var AuditSortColumns = map[string]string{
	"createdAt":  "created_at",
	"timestamp":  "created_at",
	"actionType": "action_type",
	"brand":      "brand",
	"sku":        "sku",
}

// BuildProductFilter parses brand/category/search parameters. Blank or
// whitespace-only values count as not supplied, never as "match empty".
func BuildProductFilter(params url.Values) ProductFilter {
	search := strings.TrimSpace(params.Get("search"))
	if search != "" {
		return ProductFilter{Search: search}
	}
	return ProductFilter{
		Brand:    strings.TrimSpace(params.Get("brand")),
		Category: strings.TrimSpace(params.Get("category")),
	}
}

// BuildAuditFilter parses audit trail filter parameters. Date bounds accept
// RFC 3339 or plain dates; malformed values and unknown action types are
// rejected.
func BuildAuditFilter(params url.Values) (AuditFilter, error) {
	f := AuditFilter{
		Search:     strings.TrimSpace(params.Get("search")),
		Brand:      strings.TrimSpace(params.Get("brand")),
		SKU:        strings.TrimSpace(params.Get("sku")),
		ActionType: strings.TrimSpace(params.Get("actionType")),
		ActorID:    strings.TrimSpace(params.Get("actorId")),
	}

	if f.ActionType != "" && !entity.ValidAction(f.ActionType) {
		return AuditFilter{}, apperror.InvalidQueryf("unknown actionType: %q", f.ActionType)
	}

	from, err := parseDate(params.Get("startDate"))
	if err != nil {
		return AuditFilter{}, err
	}
	to, err := parseDate(params.Get("endDate"))
	if err != nil {
		return AuditFilter{}, err
	}
	f.From, f.To = from, to
	return f, nil
}

// BuildSort validates sortBy/sortOrder against the given column map. The
// direction defaults to descending; only an explicit "asc" flips it.
func BuildSort(params url.Values, columns map[string]string, defaultField string) (Sort, error) {
	field := strings.TrimSpace(params.Get("sortBy"))
	if field == "" {
		field = defaultField
	}
	if _, ok := columns[field]; !ok {
		return Sort{}, apperror.InvalidQueryf("unknown sort field: %q", field)
	}
	order := strings.TrimSpace(params.Get("sortOrder"))
	return Sort{Field: field, Desc: !strings.EqualFold(order, "asc")}, nil
}

// BuildPage validates page/limit. Missing values take defaults, an oversized
// limit is clamped to MaxLimit, and non-numeric or non-positive values are
// rejected rather than silently defaulted.
func BuildPage(params url.Values, defaultLimit int) (Page, error) {
	page, err := parsePositiveInt(params.Get("page"), "page", 1)
	if err != nil {
		return Page{}, err
	}
	limit, err := parsePositiveInt(params.Get("limit"), "limit", defaultLimit)
	if err != nil {
		return Page{}, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}, nil
}

func parsePositiveInt(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidQueryf("%s must be an integer, got %q", name, raw)
	}
	if v < 1 {
		return 0, apperror.InvalidQueryf("%s must be >= 1, got %d", name, v)
	}
	return v, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.InvalidQueryf("invalid date: %q", raw)
}
