package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan/model"
)

func TestBuildLoanQuery(t *testing.T) {
	userID := uuid.New()

	query, args, err := buildLoanQuery(postgresDialect, model.Filter{UserID: userID, ActiveOnly: true})
	require.NoError(t, err)

	assert.Contains(t, query, `INNER JOIN "books" AS "b" ON ("b"."id" = "l"."book_id")`)
	assert.Contains(t, query, `INNER JOIN "users" AS "u" ON ("u"."id" = "l"."user_id")`)
	assert.Contains(t, query, `"l"."user_id" = $1`)
	assert.Contains(t, query, `"l"."returned_at" IS NULL`)
	assert.NotContains(t, query, `"l"."book_id" =`)
	assert.Equal(t, []interface{}{userID.String()}, args)
}

func TestBuildLoanQueryByBook(t *testing.T) {
	bookID := uuid.New()

	query, args, err := buildLoanQuery(sqliteDialect, model.Filter{BookID: bookID})
	require.NoError(t, err)

	assert.Contains(t, query, "`l`.`book_id` = ?")
	assert.NotContains(t, query, "IS NULL")
	assert.Contains(t, query, "ORDER BY `l`.`borrowed_at` DESC")
	assert.Equal(t, []interface{}{bookID.String()}, args)
}
