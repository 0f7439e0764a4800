package validators

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/helpers"
)

// Store answers the storage-backed questions some rules ask.
type Store interface {
	Taken(ctx context.Context, table, column, value, exceptID string) (bool, error)
	Exists(ctx context.Context, table, id string) (bool, error)
	ParentsOf(ctx context.Context, subcategoryIDs []string) (map[string]string, error)
	AliasTaken(ctx context.Context, userID, alias, exceptID string) (bool, error)
}

// Subject describes who a request acts for and on.
type Subject struct {
	// ID of the document being updated, empty on create.
	ID string
	// UserID of the authenticated caller.
	UserID string
	// Defaults fill body fields the client left out, e.g. a parent id from the path.
	Defaults map[string]string
}

// Checks runs the rules that need storage. The first storage failure is kept
// and reported instead of a validation error.
type Checks struct {
	ctx     context.Context
	store   Store
	subject Subject
	errs    *helpers.ValidationError
	err     error
}

type checker interface {
	check(c *Checks)
}

func (c *Checks) Subject() Subject {
	return c.subject
}

func (c *Checks) Fail(path, msg string, value any) {
	c.errs.Add(path, msg, value)
}

func (c *Checks) failed(err error) bool {
	if err != nil && c.err == nil {
		c.err = err
	}
	return c.err != nil
}

// Unique fails when another row already holds value; the updated row itself
// does not count.
func (c *Checks) Unique(path, table, column, value, format string) {
	if value == "" || c.err != nil {
		return
	}
	taken, err := c.store.Taken(c.ctx, table, column, value, c.subject.ID)
	if c.failed(err) {
		return
	}
	if taken {
		c.Fail(path, fmt.Sprintf(format, value), value)
	}
}

func (c *Checks) Exists(path, table, id, format string) {
	if id == "" || c.err != nil {
		return
	}
	ok, err := c.store.Exists(c.ctx, table, id)
	if c.failed(err) {
		return
	}
	if !ok {
		c.Fail(path, fmt.Sprintf(format, id), id)
	}
}

// Subcategories requires every id to exist and, when categoryID is known, to
// belong to that category.
func (c *Checks) Subcategories(path string, ids []string, categoryID string) {
	ids = Dedupe(ids)
	if len(ids) == 0 || c.err != nil {
		return
	}
	parents, err := c.store.ParentsOf(c.ctx, ids)
	if c.failed(err) {
		return
	}
	if len(parents) != len(ids) {
		c.Fail(path, "One of the given subcategories doesn't exist", ids)
		return
	}
	if categoryID == "" {
		return
	}
	for _, parent := range parents {
		if parent != categoryID {
			c.Fail(path, "Subcategories list must belong to the given category", ids)
			return
		}
	}
}

func (c *Checks) AliasFree(path, alias string) {
	if alias == "" || c.err != nil {
		return
	}
	taken, err := c.store.AliasTaken(c.ctx, c.subject.UserID, alias, c.subject.ID)
	if c.failed(err) {
		return
	}
	if taken {
		c.Fail(path, fmt.Sprintf("This address alias: '%s' exists already, please pick a different one.", alias), alias)
	}
}

// Dedupe keeps the first occurrence of every value.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
