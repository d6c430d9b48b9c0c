package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

var (
	postgresDialect = goqu.Dialect("postgres")
	sqliteDialect   = goqu.Dialect("sqlite3")
)

// buildLoanQuery joins the ledger with the borrower and the book title.
// Soft-deleted books still resolve because their rows are kept.
func buildLoanQuery(dialect goqu.DialectWrapper, filter model.Filter) (string, []interface{}, error) {
	ds := dialect.From(goqu.T("loans").As("l")).
		Select(
			goqu.I("l.id").As("id"),
			goqu.I("l.book_id").As("book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.I("l.user_id").As("user_id"),
			goqu.I("u.username").As("username"),
			goqu.I("l.borrowed_at").As("borrowed_at"),
			goqu.I("l.returned_at").As("returned_at"),
		).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("l.user_id")))).
		Order(goqu.I("l.borrowed_at").Desc(), goqu.I("l.id").Asc())

	if filter.BookID != uuid.Nil {
		ds = ds.Where(goqu.I("l.book_id").Eq(filter.BookID.String()))
	}
	if filter.UserID != uuid.Nil {
		ds = ds.Where(goqu.I("l.user_id").Eq(filter.UserID.String()))
	}
	if filter.ActiveOnly {
		ds = ds.Where(goqu.I("l.returned_at").IsNull())
	}

	return ds.Prepared(true).ToSQL()
}
