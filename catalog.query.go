package main

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListParams holds the criteria of a list query. Filters are keyed by
// query parameter name, each kind ignores the names it does not know.
type ListParams struct {
	Filters map[string]string
	Q       string
	Sort    string
	Limit   int
	Offset  int
}

// NewListParams builds list criteria from url query values.
// Malformed limit or offset fall back to their defaults.
func NewListParams(values url.Values) ListParams {
	params := ListParams{Filters: make(map[string]string), Limit: DefaultListLimit}
	for key := range values {
		value := values.Get(key)
		switch key {
		case "q":
			params.Q = value
		case "sort":
			params.Sort = value
		case "limit":
			params.Limit = parseIntOr(value, DefaultListLimit)
		case "offset":
			params.Offset = parseIntOr(value, 0)
		default:
			params.Filters[key] = value
		}
	}
	return params
}

func parseIntOr(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// window returns the effective offset and limit. A zero limit means
// unset and gets the default, others are clamped into [1, MaxListLimit].
func (p ListParams) window() (offset, limit int) {
	limit = p.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	return max(p.Offset, 0), min(max(limit, 1), MaxListLimit)
}

// fieldValue is a sortable field value. The zero value means missing.
type fieldValue struct {
	present bool
	numeric bool
	num     int
	text    string
}

func textValue(s string) fieldValue {
	return fieldValue{present: s != "", text: s}
}

func numberValue(n *int) fieldValue {
	if n == nil {
		return fieldValue{}
	}
	return fieldValue{present: true, numeric: true, num: *n}
}

// compareValues orders missing values last whatever the direction.
// Texts compare byte-wise, so case sensitive.
func compareValues(a, b fieldValue, desc bool) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return 1
	case !b.present:
		return -1
	}
	var c int
	if a.numeric && b.numeric {
		c = cmp.Compare(a.num, b.num)
	} else {
		c = strings.Compare(a.text, b.text)
	}
	if desc {
		return -c
	}
	return c
}

// querySchema describes how one entity kind is filtered and sorted.
type querySchema[T any] struct {
	exact       map[string]func(T) string
	contains    map[string]func(T) string
	searchable  func(T) []string
	sortable    map[string]func(T) fieldValue
	defaultSort string
}

// apply runs exact filters, substring filters, the free-text filter,
// the sort and finally the pagination. records is never modified.
func (qs querySchema[T]) apply(records []T, params ListParams) []T {
	result := slices.Clone(records)

	for name, field := range qs.exact {
		needle := normalize(params.Filters[name])
		if needle == "" {
			continue
		}
		result = filter(result, func(r T) bool { return normalize(field(r)) == needle })
	}

	for name, field := range qs.contains {
		needle := normalize(params.Filters[name])
		if needle == "" {
			continue
		}
		result = filter(result, func(r T) bool { return strings.Contains(normalize(field(r)), needle) })
	}

	if needle := normalize(params.Q); needle != "" {
		result = filter(result, func(r T) bool { return strings.Contains(qs.haystack(r), needle) })
	}

	qs.sort(result, params.Sort)

	offset, limit := params.window()
	if offset >= len(result) {
		return []T{}
	}
	return result[offset:min(offset+limit, len(result))]
}

func (qs querySchema[T]) haystack(r T) string {
	fields := qs.searchable(r)
	for i, f := range fields {
		fields[i] = normalize(f)
	}
	return strings.Join(fields, " ")
}

// sort orders records in place following order which is a field name
// optionally prefixed with '-'. Unknown fields keep insertion order.
func (qs querySchema[T]) sort(records []T, order string) {
	if order == "" {
		order = qs.defaultSort
	}
	desc := strings.HasPrefix(order, "-")
	field, ok := qs.sortable[strings.TrimPrefix(order, "-")]
	if !ok {
		return
	}
	slices.SortStableFunc(records, func(a, b T) int {
		return compareValues(field(a), field(b), desc)
	})
}

func filter[T any](records []T, keep func(T) bool) []T {
	kept := records[:0]
	for _, r := range records {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

var bookQuerySchema = querySchema[Book]{
	exact: map[string]func(Book) string{
		"language":    func(b Book) string { return string(b.Language) },
		"authorId":    func(b Book) string { return b.AuthorID },
		"publisherId": func(b Book) string { return b.PublisherID },
	},
	contains: map[string]func(Book) string{
		"title": func(b Book) string { return b.Title },
	},
	searchable: func(b Book) []string {
		return []string{b.Title, string(b.Language), b.AuthorID, b.PublisherID}
	},
	sortable: map[string]func(Book) fieldValue{
		"title":     func(b Book) fieldValue { return textValue(b.Title) },
		"copyright": func(b Book) fieldValue { return numberValue(b.Copyright) },
		"pages":     func(b Book) fieldValue { return numberValue(b.Pages) },
	},
	defaultSort: "title",
}

var authorQuerySchema = querySchema[Author]{
	exact: map[string]func(Author) string{
		"country": func(a Author) string { return a.Country },
	},
	contains: map[string]func(Author) string{
		"name": func(a Author) string { return a.Name },
	},
	searchable: func(a Author) []string {
		return []string{a.Name, a.Country}
	},
	sortable: map[string]func(Author) fieldValue{
		"name":    func(a Author) fieldValue { return textValue(a.Name) },
		"country": func(a Author) fieldValue { return textValue(a.Country) },
	},
	defaultSort: "name",
}

var publisherQuerySchema = querySchema[Publisher]{
	contains: map[string]func(Publisher) string{
		"name": func(p Publisher) string { return p.Name },
	},
	searchable: func(p Publisher) []string {
		return []string{p.Name}
	},
	sortable: map[string]func(Publisher) fieldValue{
		"name": func(p Publisher) fieldValue { return textValue(p.Name) },
	},
	defaultSort: "name",
}
