// Package listquery turns list request parameters into filter, sort,
// projection, search and pagination scopes for gorm.
package listquery

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	MaxLimit     = 100
	// maxPage keeps (page-1)*limit well inside int.
	maxPage = 1_000_000
)

var reserved = map[string]bool{"page": true, "limit": true, "fields": true, "sort": true, "keyword": true}

var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

var bracketKey = regexp.MustCompile(`^([A-Za-z0-9_]+)\[(gte|gt|lte|lt)\]$`)

// Schema whitelists what a resource exposes to list queries.
// Columns maps request field names to database columns.
type Schema struct {
	Columns       map[string]string
	SearchColumns []string
	DefaultLimit  int
}

type Filter struct {
	Column string
	Op     string
	Values []string
}

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	Sort    []Order
	Select  []string
	Omit    []string
	Keyword string
	Page    int
	Limit   int

	search []string
}

type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
	NumberOfPages int `json:"numberOfPages"`
	Next          int `json:"next,omitempty"`
	Prev          int `json:"prev,omitempty"`
}

func Parse(values url.Values, schema Schema) Query {
	q := Query{search: schema.SearchColumns}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		name, op := key, "="
		if m := bracketKey.FindStringSubmatch(key); m != nil {
			name, op = m[1], operators[m[2]]
		}
		col, ok := schema.Columns[name]
		if !ok {
			continue
		}
		if op != "=" {
			q.Filters = append(q.Filters, Filter{Column: col, Op: op, Values: vals[:1]})
			continue
		}
		if len(vals) > 1 {
			op = "IN"
		}
		q.Filters = append(q.Filters, Filter{Column: col, Op: op, Values: vals})
	}
	// url.Values is a map; keep generated SQL stable.
	sort.Slice(q.Filters, func(i, j int) bool {
		if q.Filters[i].Column != q.Filters[j].Column {
			return q.Filters[i].Column < q.Filters[j].Column
		}
		return q.Filters[i].Op < q.Filters[j].Op
	})

	for _, f := range splitList(values.Get("sort")) {
		desc := strings.HasPrefix(f, "-")
		if col, ok := schema.Columns[strings.TrimPrefix(f, "-")]; ok {
			q.Sort = append(q.Sort, Order{Column: col, Desc: desc})
		}
	}
	if len(q.Sort) == 0 {
		q.Sort = []Order{{Column: "created_at", Desc: true}}
	}

	for _, f := range splitList(values.Get("fields")) {
		if strings.HasPrefix(f, "-") {
			if col, ok := schema.Columns[f[1:]]; ok && col != "id" {
				q.Omit = append(q.Omit, col)
			}
			continue
		}
		if col, ok := schema.Columns[f]; ok {
			q.Select = append(q.Select, col)
		}
	}
	if len(q.Select) > 0 {
		q.Select = append([]string{"id"}, q.Select...)
		q.Omit = nil
	}

	if len(schema.SearchColumns) > 0 {
		q.Keyword = strings.TrimSpace(values.Get("keyword"))
	}

	limit := schema.DefaultLimit
	if limit <= 0 {
		limit = defaultLimit
	}
	q.Page = min(positiveInt(values.Get("page"), 1), maxPage)
	q.Limit = min(positiveInt(values.Get("limit"), limit), MaxLimit)
	return q
}

func (q Query) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Where applies filters and keyword search; counts are taken under it.
func (q Query) Where(db *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		switch f.Op {
		case "IN":
			db = db.Where(f.Column+" IN ?", f.Values)
		default:
			db = db.Where(f.Column+" "+f.Op+" ?", f.Values[0])
		}
	}
	if q.Keyword != "" && len(q.search) > 0 {
		like := "%" + strings.ToLower(q.Keyword) + "%"
		clauses := make([]string, len(q.search))
		args := make([]any, len(q.search))
		for i, col := range q.search {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return db
}

// Window applies sort, projection and the page window.
func (q Query) Window(db *gorm.DB) *gorm.DB {
	for _, o := range q.Sort {
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		db = db.Order(o.Column + dir)
	}
	if len(q.Select) > 0 {
		db = db.Select(q.Select)
	}
	if len(q.Omit) > 0 {
		db = db.Omit(q.Omit...)
	}
	return db.Offset(q.Skip()).Limit(q.Limit)
}

func (q Query) Paginate(total int64) Pagination {
	p := Pagination{
		CurrentPage:   q.Page,
		Limit:         q.Limit,
		NumberOfPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
	if int64(q.Page*q.Limit) < total {
		p.Next = q.Page + 1
	}
	if q.Page > 1 {
		p.Prev = q.Page - 1
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
