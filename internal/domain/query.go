package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of countries shown per list page.
const DefaultPageSize = 24

// Sort orders accepted by Query.SortBy.
const (
	SortByName       = "name"
	SortByPopulation = "population"
	SortByArea       = "area"
)

// RegionAll disables region filtering.
const RegionAll = "all"

// Regions lists the region filter values offered to users.
var Regions = []string{RegionAll, "Africa", "Americas", "Asia", "Europe", "Oceania"}

// Query describes a search/filter/sort/paginate view over a country list.
type Query struct {
	Text     string
	Region   string
	SortBy   string
	Page     int
	PageSize int
}

// Page is one page of query results.
type Page struct {
	Items      []CountryRecord `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
}

// Apply filters, sorts, and paginates records. The input slice is not modified.
//
// Text matches the name or capital case-insensitively. Population and area
// sort descending (unknown area counts as zero); name sorts ascending with
// English collation. The page is clamped into [1, TotalPages] and TotalPages
// is at least 1.
func Apply(records []CountryRecord, q Query) Page {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	list := make([]CountryRecord, 0, len(records))
	for _, r := range records {
		if text != "" &&
			!strings.Contains(strings.ToLower(r.Name), text) &&
			!strings.Contains(strings.ToLower(r.Capital), text) {
			continue
		}
		if q.Region != "" && q.Region != RegionAll && r.Region != q.Region {
			continue
		}
		list = append(list, r)
	}

	switch q.SortBy {
	case SortByPopulation:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Population > list[j].Population })
	case SortByArea:
		sort.SliceStable(list, func(i, j int) bool { return areaOrZero(list[i]) > areaOrZero(list[j]) })
	default:
		col := collate.New(language.English, collate.Loose)
		sort.SliceStable(list, func(i, j int) bool { return col.CompareString(list[i].Name, list[j].Name) < 0 })
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(list)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	return Page{
		Items:      list[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

func areaOrZero(r CountryRecord) float64 {
	if r.Area == nil {
		return 0
	}
	return *r.Area
}
