package data

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookModel(t *testing.T) BookModel {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return NewModels(db).Books
}

func powerUpInput() CreateBookInput {
	return CreateBookInput{
		ISBN:      "0691161518",
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Matthew Lane",
		Language:  "english",
		Pages:     264,
		Publisher: "Princeton University Press",
		Title:     "Power-Up: Unlocking the Hidden Mathematics in Video Games",
		Year:      2017,
	}
}

func remarkableInput() CreateBookInput {
	return CreateBookInput{
		ISBN:      "1524743445",
		AmazonURL: "https://www.amazon.com/dp/1524743445/",
		Author:    "Hank Green",
		Language:  "english",
		Pages:     264,
		Publisher: "Dutton",
		Title:     "An Absolutely Remarkable Thing",
		Year:      2018,
	}
}

func bookFrom(in CreateBookInput) *Book {
	return &Book{
		ISBN:      in.ISBN,
		AmazonURL: in.AmazonURL,
		Author:    in.Author,
		Language:  in.Language,
		Pages:     int(in.Pages),
		Publisher: in.Publisher,
		Title:     in.Title,
		Year:      int(in.Year),
	}
}

func TestBookModel_CreateThenFindOne(t *testing.T) {
	m := setupBookModel(t)
	ctx := context.Background()

	created, err := m.Create(ctx, powerUpInput())
	require.NoError(t, err)
	assert.Equal(t, bookFrom(powerUpInput()), created)

	found, err := m.FindOne(ctx, "0691161518")
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestBookModel_CreateDuplicateISBN(t *testing.T) {
	m := setupBookModel(t)
	ctx := context.Background()

	_, err := m.Create(ctx, powerUpInput())
	require.NoError(t, err)

	_, err = m.Create(ctx, powerUpInput())
	require.Error(t, err)

	var nf *NotFoundError
	assert.False(t, errors.As(err, &nf))
}

func TestBookModel_FindOne(t *testing.T) {
	t.Run("returns not found for unknown isbn", func(t *testing.T) {
		m := setupBookModel(t)

		book, err := m.FindOne(context.Background(), "badisbn")
		assert.Nil(t, book)

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "badisbn", nf.ISBN)
		assert.Equal(t, http.StatusNotFound, nf.Status())
		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Equal(t, "There is no book with an isbn 'badisbn'", err.Error())
	})
}

func TestBookModel_FindAll(t *testing.T) {
	t.Run("empty table yields empty slice", func(t *testing.T) {
		m := setupBookModel(t)

		books, err := m.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("orders by title after creates and deletes", func(t *testing.T) {
		m := setupBookModel(t)
		ctx := context.Background()

		third := remarkableInput()
		third.ISBN = "0000000001"
		third.Title = "Zen and the Art"

		for _, in := range []CreateBookInput{powerUpInput(), third, remarkableInput()} {
			_, err := m.Create(ctx, in)
			require.NoError(t, err)
		}
		require.NoError(t, m.Remove(ctx, "0691161518"))

		books, err := m.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "An Absolutely Remarkable Thing", books[0].Title)
		assert.Equal(t, "Zen and the Art", books[1].Title)
	})
}

func TestBookModel_Update(t *testing.T) {
	t.Run("applies every provided field", func(t *testing.T) {
		m := setupBookModel(t)
		ctx := context.Background()
		_, err := m.Create(ctx, powerUpInput())
		require.NoError(t, err)

		author := "New Author"
		pages := Integer(1000)
		publisher := "New Publisher"
		title := "The title for this book changed"
		otherISBN := "9999999999"

		updated, err := m.Update(ctx, "0691161518", UpdateBookInput{
			ISBN:      &otherISBN,
			Author:    &author,
			Pages:     &pages,
			Publisher: &publisher,
			Title:     &title,
		})
		require.NoError(t, err)

		want := bookFrom(powerUpInput())
		want.Author = author
		want.Pages = int(pages)
		want.Publisher = publisher
		want.Title = title
		assert.Equal(t, want, updated)

		books, err := m.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 1)
		assert.Equal(t, "0691161518", books[0].ISBN)
	})

	t.Run("keeps fields that were not provided", func(t *testing.T) {
		m := setupBookModel(t)
		ctx := context.Background()
		_, err := m.Create(ctx, powerUpInput())
		require.NoError(t, err)

		year := Integer(2001)
		updated, err := m.Update(ctx, "0691161518", UpdateBookInput{Year: &year})
		require.NoError(t, err)

		want := bookFrom(powerUpInput())
		want.Year = 2001
		assert.Equal(t, want, updated)
	})

	t.Run("returns not found for unknown isbn", func(t *testing.T) {
		m := setupBookModel(t)

		title := "Nope"
		_, err := m.Update(context.Background(), "badisbn", UpdateBookInput{Title: &title})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestBookModel_Remove(t *testing.T) {
	t.Run("deletes an existing book", func(t *testing.T) {
		m := setupBookModel(t)
		ctx := context.Background()
		_, err := m.Create(ctx, powerUpInput())
		require.NoError(t, err)

		require.NoError(t, m.Remove(ctx, "0691161518"))

		books, err := m.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("unknown isbn leaves the store unmodified", func(t *testing.T) {
		m := setupBookModel(t)
		ctx := context.Background()
		_, err := m.Create(ctx, powerUpInput())
		require.NoError(t, err)

		err = m.Remove(ctx, "badisbn")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)

		books, err := m.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "nosuchdriver", "x")
	assert.Error(t, err)
}
