package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// likeEscape is the escape character used by every LIKE predicate.  '!'
// needs no quoting in either MySQL or SQLite string literals.
const likeEscape = '!'

// containsPattern turns a keyword into a lower-cased LIKE pattern matching
// it as a substring, with LIKE metacharacters taken literally.
func containsPattern(keyword string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range strings.ToLower(keyword) {
		switch r {
		case '%', '_', likeEscape:
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}

// isWildcard reports whether a category or cuisine filter matches anything.
func isWildcard(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "all")
}

// whereClause accumulates AND-ed predicates and their arguments.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// nowUTC truncates to seconds so values round-trip through DATETIME
// columns unchanged.
func nowUTC() time.Time { return time.Now().UTC().Truncate(time.Second) }

// rollback is deferred by transactional methods; it is a no-op once the
// transaction committed.
func rollback(tx *sql.Tx, committed *bool) {
	if !*committed {
		_ = tx.Rollback()
	}
}

func exists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
