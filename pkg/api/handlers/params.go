package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/listing"
)

// paramError reports an invalid query parameter.
type paramError struct {
	param string
	msg   string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.param, e.msg)
}

// parseListRequest reads a listing request from query parameters:
//
//	category  repeatable or comma separated
//	s         search term
//	status    published or draft (admin only; public listings are published)
//	orderby   sort field, with order=asc|desc
//	limit     page size
//	offset    page start
//
// The alphabetic filter parameters are passed through untouched for the
// augmenter to read.
func parseListRequest(values url.Values, admin bool) (listing.Request, error) {
	req := listing.Request{
		Categories: splitList(values["category"]),
		Params:     values,
		Admin:      admin,
		Search:     values.Get("s"),
		Status:     listing.StatusPublished,
	}

	if admin {
		req.Status = values.Get("status")
	}

	if field := values.Get("orderby"); field != "" {
		dir := alpha.Asc
		switch strings.ToLower(values.Get("order")) {
		case "", "asc":
		case "desc":
			dir = alpha.Desc
		default:
			return req, &paramError{"order", "must be asc or desc"}
		}
		req.OrderBy = []listing.Order{{Field: field, Direction: dir}}
	}

	var err error
	if req.Limit, err = intParam(values, "limit"); err != nil {
		return req, err
	}
	if req.Offset, err = intParam(values, "offset"); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name, "must be an integer"}
	}
	return n, nil
}

// splitList flattens repeated and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// linkBase returns the request URL without pagination so letter links
// start from the first page.
func linkBase(u *url.URL) *url.URL {
	base := &url.URL{Path: u.Path}
	q := u.Query()
	q.Del("offset")
	base.RawQuery = q.Encode()
	return base
}

func linksBase(raw, category string) (*url.URL, error) {
	if raw == "" {
		return &url.URL{Path: "/v1/items", RawQuery: url.Values{"category": {category}}.Encode()}, nil
	}
	return url.Parse(raw)
}
