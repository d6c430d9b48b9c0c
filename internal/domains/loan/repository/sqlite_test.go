package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	usermodel "library-backend/internal/domains/user/model"
	userrepo "library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/testutil"
)

type fixture struct {
	db    *sqlx.DB
	loans RepositoryInterface
	alice *usermodel.User
	bob   *usermodel.User
	book  *bookmodel.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewSQLite(t, t.TempDir())

	users := userrepo.NewSQLiteRepository(db)
	mkUser := func(name string) *usermodel.User {
		u := &usermodel.User{
			ID:           uuid.New(),
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "x",
			Role:         usermodel.RoleMember,
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	now := time.Now().UTC()
	book := &bookmodel.Book{ID: uuid.New(), ISBN: "9780134190440", Title: "GOPL", Author: "Donovan", Available: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, bookrepo.NewSQLiteRepository(db).Create(ctx, book))

	return &fixture{
		db:    db,
		loans: NewSQLiteRepository(db),
		alice: mkUser("alice"),
		bob:   mkUser("bob"),
		book:  book,
	}
}

func (f *fixture) borrow(t *testing.T, user *usermodel.User, at time.Time) *model.Loan {
	t.Helper()
	l := &model.Loan{ID: uuid.New(), BookID: f.book.ID, UserID: user.ID, BorrowedAt: at}
	require.NoError(t, f.loans.Create(context.Background(), l))
	return l
}

func TestSQLiteActiveLoanLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.loans.FindActiveByBook(ctx, f.book.ID)
	assert.ErrorIs(t, err, model.ErrNoActiveLoan)

	created := f.borrow(t, f.alice, time.Now())

	active, err := f.loans.FindActiveByBook(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
	assert.Equal(t, "alice", active.Username)
	assert.Equal(t, "GOPL", active.BookTitle)
	assert.True(t, active.Active())

	// one active loan per book
	err = f.loans.Create(ctx, &model.Loan{ID: uuid.New(), BookID: f.book.ID, UserID: f.bob.ID, BorrowedAt: time.Now()})
	assert.ErrorIs(t, err, model.ErrActiveLoanExists)

	ok, err := f.loans.MarkReturned(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// returned_at is set once
	ok, err = f.loans.MarkReturned(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.loans.FindActiveByBook(ctx, f.book.ID)
	assert.ErrorIs(t, err, model.ErrNoActiveLoan)
}

func TestSQLiteListLoans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Now().Add(-time.Hour)

	first := f.borrow(t, f.alice, base)
	_, err := f.loans.MarkReturned(ctx, first.ID, base.Add(time.Minute))
	require.NoError(t, err)
	second := f.borrow(t, f.bob, base.Add(2*time.Minute))

	history, err := f.loans.List(ctx, model.Filter{BookID: f.book.ID})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "most recent first")
	assert.Equal(t, first.ID, history[1].ID)
	require.NotNil(t, history[1].ReturnedAt)

	aliceAll, err := f.loans.List(ctx, model.Filter{UserID: f.alice.ID})
	require.NoError(t, err)
	assert.Len(t, aliceAll, 1)

	aliceActive, err := f.loans.List(ctx, model.Filter{UserID: f.alice.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, aliceActive)

	bobActive, err := f.loans.List(ctx, model.Filter{UserID: f.bob.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, bobActive, 1)
	assert.Equal(t, "bob", bobActive[0].Username)
}
