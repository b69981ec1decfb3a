// Package querybuilder wraps squirrel with postgres placeholders and a few
// helpers for struct-tagged models.
package querybuilder

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

type (
	Eq    = sq.Eq
	NotEq = sq.NotEq
	And   = sq.And
	Or    = sq.Or
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...)
}

func InsertInto(table string) sq.InsertBuilder {
	return psql.Insert(table)
}

func Update(table string) sq.UpdateBuilder {
	return psql.Update(table)
}

func Delete(table string) sq.DeleteBuilder {
	return psql.Delete(table)
}

// Expr passes a raw SQL fragment through squirrel; use ? for arguments.
func Expr(sql string, args ...any) sq.Sqlizer {
	return sq.Expr(sql, args...)
}

// OnConflictUpdate renders "ON CONFLICT (keys) DO UPDATE SET c = EXCLUDED.c"
// for every column that is neither a key nor listed in keep.
func OnConflictUpdate(columns, keys, keep []string) string {
	skip := make(map[string]struct{}, len(keys)+len(keep))
	for _, c := range keys {
		skip[c] = struct{}{}
	}
	for _, c := range keep {
		skip[c] = struct{}{}
	}

	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := skip[c]; ok {
			continue
		}
		sets = append(sets, c+" = EXCLUDED."+c)
	}

	conflict := "ON CONFLICT (" + strings.Join(keys, ", ") + ")"
	if len(sets) == 0 {
		return conflict + " DO NOTHING"
	}
	return conflict + " DO UPDATE SET " + strings.Join(sets, ", ")
}
