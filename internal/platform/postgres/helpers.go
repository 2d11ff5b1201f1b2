package postgres

import (
	"database/sql"
	"strconv"
	"strings"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so a single scan
// function per entity serves single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// collectRows drains rows through the given per-entity scan function.
// Always returns a non-nil slice so empty results serialize as [].
func collectRows[T any](rows *sql.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer func() { _ = rows.Close() }()

	out := make([]*T, 0)
	for rows.Next() {
		entity, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// likeEscaper neutralizes LIKE/ILIKE metacharacters in user-supplied
// search terms so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike returns the query text with LIKE wildcards escaped.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

// setClause accumulates "col = $n" fragments and their arguments for
// dynamic partial updates. Placeholders are numbered in argument order.
type setClause struct {
	frags []string
	args  []any
}

// add appends an assignment for col with the given value.
func (c *setClause) add(col string, value any) {
	c.args = append(c.args, value)
	c.frags = append(c.frags, col+" = $"+strconv.Itoa(len(c.args)))
}

// next reserves the next placeholder for a non-SET argument (e.g., the
// WHERE clause) and returns it as "$n".
func (c *setClause) next(value any) string {
	c.args = append(c.args, value)
	return "$" + strconv.Itoa(len(c.args))
}

// join returns the accumulated fragments as a comma-separated SET body.
func (c *setClause) join() string {
	return strings.Join(c.frags, ", ")
}
