package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"library-backend/internal/domains/book/model"
)

var (
	postgresDialect = goqu.Dialect("postgres")
	sqliteDialect   = goqu.Dialect("sqlite3")
)

var bookColumns = []interface{}{
	goqu.C("id"), goqu.C("isbn"), goqu.C("title"), goqu.C("author"),
	goqu.C("available"), goqu.C("created_at"), goqu.C("updated_at"), goqu.C("deleted_at"),
}

const bookSelect = `SELECT id, isbn, title, author, available, created_at, updated_at, deleted_at FROM books`

// buildListQuery renders the catalog listing for dialect with bound arguments
func buildListQuery(dialect goqu.DialectWrapper, filter model.ListFilter) (string, []interface{}, error) {
	ds := dialect.From("books").
		Select(bookColumns...).
		Where(goqu.C("deleted_at").IsNull()).
		Order(goqu.C("title").Asc(), goqu.C("id").Asc())

	if filter.AvailableOnly {
		ds = ds.Where(goqu.C("available").IsTrue())
	}

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := "%" + escapeLike(strings.ToLower(kw)) + "%"
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(?) LIKE ? ESCAPE '!'", goqu.C("title"), pattern),
			goqu.L("LOWER(?) LIKE ? ESCAPE '!'", goqu.C("author"), pattern),
		))
	}

	return ds.Prepared(true).ToSQL()
}

// escapeLike makes the keyword match literally; '!' is the escape character
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
