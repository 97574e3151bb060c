package core

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageLimit is the page size used when the request does not ask for
// one.
const DefaultPageLimit = 50

// PageRequest is the parsed, normalized form of a paginated read request.
// Filters only ever contains keys present in the endpoint's FilterSpec.
type PageRequest struct {
	Page     int
	Limit    int
	LimitAll bool
	Sort     Sort
	Filters  map[string][]string
}

// ParsePageRequest normalizes untrusted query parameters against a spec.
// Unknown filter and sort keys are dropped or defaulted, never rejected.
func ParsePageRequest(spec FilterSpec, params url.Values) PageRequest {
	req := PageRequest{
		Page:    1,
		Limit:   DefaultPageLimit,
		Filters: make(map[string][]string),
	}

	if p, err := strconv.Atoi(params.Get("page")); err == nil && p >= 1 {
		req.Page = p
	}

	switch limit := params.Get("limit"); {
	case strings.EqualFold(limit, "all"):
		req.LimitAll = true
	case limit != "":
		if l, err := strconv.Atoi(limit); err == nil && l >= 1 {
			req.Limit = l
		}
	}

	req.Sort = spec.SortFor(params.Get("sortKey"), params.Get("sortDirection"))

	for key, filter := range spec.Filters {
		values := splitFilterValues(params[key], filter.Kind)
		if len(values) > 0 {
			req.Filters[key] = values
		}
	}
	return req
}

// splitFilterValues collects the raw values for one parameter. Multi-value
// filters accept both repeated parameters and comma-joined lists; everything
// else keeps the first non-empty value only.
func splitFilterValues(raw []string, kind CompareKind) []string {
	var values []string
	for _, v := range raw {
		if kind == CompareIn {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					values = append(values, part)
				}
			}
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
			break
		}
	}
	return values
}
