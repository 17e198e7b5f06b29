package jikan

import (
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/jikan/pkg/jikan/guard"
)

// Jikan parameter limits.
const (
	MaxPageLimit   = 25
	MinQueryLength = 3
)

// Allowed search filter values, per resource.
var (
	AnimeTypes    = []string{"tv", "movie", "ova", "special", "ona", "music", "cm", "pv", "tv_special"}
	AnimeStatuses = []string{"airing", "complete", "upcoming"}
	AnimeOrderBy  = []string{"mal_id", "title", "start_date", "end_date", "episodes", "score", "scored_by", "rank", "popularity", "members", "favorites"}

	MangaTypes    = []string{"manga", "novel", "lightnovel", "oneshot", "doujin", "manhwa", "manhua"}
	MangaStatuses = []string{"publishing", "complete", "hiatus", "discontinued", "upcoming"}
	MangaOrderBy  = []string{"mal_id", "title", "start_date", "end_date", "chapters", "volumes", "score", "scored_by", "rank", "popularity", "members", "favorites"}

	SortOrders = []string{"asc", "desc"}
)

// SearchQuery holds the parameters of /anime and /manga searches.
// Zero values are left out of the request.
type SearchQuery struct {
	// Query is the text to search for (at least 3 characters when set)
	Query string

	// Page is the 1-based result page
	Page int

	// Limit is the page size, 1 to 25
	Limit int

	// Type filters by media type, e.g. "tv" or "manga"
	Type string

	// Status filters by airing or publishing status
	Status string

	// OrderBy names the sort field
	OrderBy string

	// Sort is "asc" or "desc"
	Sort string
}

// filters lists the allowed values for one resource's search.
type filters struct {
	types, statuses, orderBy []string
}

var (
	animeFilters = filters{types: AnimeTypes, statuses: AnimeStatuses, orderBy: AnimeOrderBy}
	mangaFilters = filters{types: MangaTypes, statuses: MangaStatuses, orderBy: MangaOrderBy}
)

// validate checks q against f. It returns the first violation.
func (q SearchQuery) validate(f filters) error {
	var errs []error
	if q.Query != "" {
		errs = append(errs, guard.MinLength("query", q.Query, MinQueryLength))
	}
	if q.Page != 0 {
		errs = append(errs, guard.Positive("page", q.Page))
	}
	if q.Limit != 0 {
		errs = append(errs, guard.Range("limit", q.Limit, 1, MaxPageLimit))
	}
	if q.Type != "" {
		errs = append(errs, guard.OneOf("type", q.Type, f.types...))
	}
	if q.Status != "" {
		errs = append(errs, guard.OneOf("status", q.Status, f.statuses...))
	}
	if q.OrderBy != "" {
		errs = append(errs, guard.OneOf("order_by", q.OrderBy, f.orderBy...))
	}
	if q.Sort != "" {
		errs = append(errs, guard.OneOf("sort", q.Sort, SortOrders...))
	}
	return guard.First(errs...)
}

// Values encodes the non-zero parameters.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Query); s != "" {
		v.Set("q", s)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Type != "" {
		v.Set("type", strings.ToLower(q.Type))
	}
	if q.Status != "" {
		v.Set("status", strings.ToLower(q.Status))
	}
	if q.OrderBy != "" {
		v.Set("order_by", strings.ToLower(q.OrderBy))
	}
	if q.Sort != "" {
		v.Set("sort", strings.ToLower(q.Sort))
	}
	return v
}
