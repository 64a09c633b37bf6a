package services

import (
	"math"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortFields lists the columns a restaurant listing may be ordered by.
var SortFields = map[string]string{
	"cuisine_type": "restaurants.cuisine_type",
	"neighborhood": "restaurants.neighborhood",
	"name":         "restaurants.name",
	"rating":       "average_rating",
}

const defaultSortColumn = "restaurants.name"

// RestaurantQuery is the raw listing query string. Range checks run in binding,
// absent values are filled by Normalize.
type RestaurantQuery struct {
	Page         *int     `form:"page" binding:"omitempty,min=1"`
	Limit        *int     `form:"limit" binding:"omitempty,min=1,max=100"`
	Cuisine      string   `form:"cuisine"`
	Neighborhood string   `form:"neighborhood"`
	Rating       *float64 `form:"rating" binding:"omitempty,min=0,max=5"`
	Sort         string   `form:"sort" binding:"omitempty,oneof=cuisine_type neighborhood rating name"`
	Order        string   `form:"order"`
}

// ListParams is a normalized RestaurantQuery. It doubles as the list cache key.
type ListParams struct {
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	MinRating    *float64 `json:"rating,omitempty"`
	Sort         string   `json:"sort"`
	Order        string   `json:"order"`
}

func (q RestaurantQuery) Normalize() ListParams {
	p := ListParams{
		Page:         DefaultPage,
		Limit:        DefaultLimit,
		Cuisine:      q.Cuisine,
		Neighborhood: q.Neighborhood,
		MinRating:    q.Rating,
		Sort:         "name",
		Order:        "asc",
	}
	if q.Page != nil && *q.Page >= 1 {
		p.Page = *q.Page
	}
	if q.Limit != nil && *q.Limit >= 1 {
		p.Limit = min(*q.Limit, MaxLimit)
	}
	if _, ok := SortFields[q.Sort]; ok {
		p.Sort = q.Sort
	}
	if strings.EqualFold(q.Order, "desc") {
		p.Order = "desc"
	}
	return p
}

// Filter is one equality predicate on a restaurants column.
type Filter struct {
	Column string
	Value  string
}

func BuildFilters(p ListParams) []Filter {
	var filters []Filter
	if p.Cuisine != "" {
		filters = append(filters, Filter{Column: "restaurants.cuisine_type", Value: p.Cuisine})
	}
	if p.Neighborhood != "" {
		filters = append(filters, Filter{Column: "restaurants.neighborhood", Value: p.Neighborhood})
	}
	return filters
}

type OrderBy struct {
	Column string
	Desc   bool
}

func (o OrderBy) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// BuildOrderBy maps a sort field and direction to an ORDER BY term. Unknown
// fields fall back to name, anything but desc is ascending.
func BuildOrderBy(sort, order string) OrderBy {
	column, ok := SortFields[sort]
	if !ok {
		column = defaultSortColumn
	}
	return OrderBy{Column: column, Desc: strings.EqualFold(order, "desc")}
}

func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
