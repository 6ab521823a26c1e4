package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatusProgress(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		progress int
		want     int
	}{
		{"read forces 100", StatusRead, 30, 100},
		{"wish list forces 0", StatusWishList, 70, 0},
		{"reading keeps progress", StatusReading, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatusProgress(tt.status, tt.progress))
		})
	}
}

func TestBookFormData_Validate(t *testing.T) {
	assert.NoError(t, BookFormData{Title: "Dune", Author: "Frank Herbert"}.Validate())

	err := BookFormData{Title: "   ", Author: "Frank Herbert"}.Validate()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)

	err = BookFormData{Title: "Dune", Author: ""}.Validate()
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "author", vErr.Field)

	err = BookFormData{Title: "Dune", Author: "Frank Herbert", Status: "Paused"}.Validate()
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Field)
}

func TestBookFormData_Normalize(t *testing.T) {
	f := BookFormData{
		Title:    "  Dune ",
		Author:   " Frank Herbert",
		Rating:   9,
		Progress: 150,
		Status:   StatusReading,
	}.Normalize()

	assert.Equal(t, "Dune", f.Title)
	assert.Equal(t, "Frank Herbert", f.Author)
	assert.Equal(t, MaxRating, f.Rating)
	assert.Equal(t, MaxProgress, f.Progress)

	f = BookFormData{Title: "Dune", Author: "Frank Herbert", Progress: 60}.Normalize()
	assert.Equal(t, StatusWishList, f.Status, "missing status defaults to Wish List")
	assert.Equal(t, 0, f.Progress)

	f = BookFormData{Title: "Dune", Author: "Frank Herbert", Status: StatusRead, Progress: -5, Rating: -1}.Normalize()
	assert.Equal(t, 100, f.Progress)
	assert.Equal(t, 0, f.Rating)
}

func TestBookUpdate_Normalize(t *testing.T) {
	read := StatusRead
	wish := StatusWishList
	reading := StatusReading

	t.Run("status read without progress sets 100", func(t *testing.T) {
		u := BookUpdate{Status: &read}.Normalize(&Book{Status: StatusWishList, Progress: 0})
		require.NotNil(t, u.Progress)
		assert.Equal(t, 100, *u.Progress)
	})

	t.Run("status wish list overrides supplied progress", func(t *testing.T) {
		u := BookUpdate{Status: &wish, Progress: ptr(55)}.Normalize(nil)
		assert.Equal(t, 0, *u.Progress)
	})

	t.Run("status reading keeps current progress untouched", func(t *testing.T) {
		u := BookUpdate{Status: &reading}.Normalize(&Book{Status: StatusRead, Progress: 100})
		assert.Nil(t, u.Progress)
	})

	t.Run("status reading clamps supplied progress", func(t *testing.T) {
		u := BookUpdate{Status: &reading, Progress: ptr(130)}.Normalize(nil)
		assert.Equal(t, 100, *u.Progress)
	})

	t.Run("progress-only update on a read book stays at 100", func(t *testing.T) {
		u := BookUpdate{Progress: ptr(40)}.Normalize(&Book{Status: StatusRead, Progress: 100})
		assert.Equal(t, 100, *u.Progress)
	})

	t.Run("unrelated update on a wish list book is not normalized", func(t *testing.T) {
		u := BookUpdate{Notes: ptr("later")}.Normalize(&Book{Status: StatusWishList, Progress: 10})
		assert.Nil(t, u.Progress)
		assert.Nil(t, u.Status)
	})

	t.Run("strings are trimmed and rating clamped", func(t *testing.T) {
		u := BookUpdate{Title: ptr(" Emma "), Rating: ptr(7)}.Normalize(nil)
		assert.Equal(t, "Emma", *u.Title)
		assert.Equal(t, 5, *u.Rating)
	})
}

func TestBookUpdate_Validate(t *testing.T) {
	assert.NoError(t, BookUpdate{}.Validate())
	assert.True(t, BookUpdate{}.IsEmpty())
	assert.False(t, BookUpdate{Notes: ptr("")}.IsEmpty())

	var vErr *ValidationError
	assert.True(t, errors.As(BookUpdate{Title: ptr(" ")}.Validate(), &vErr))
	bad := Status("Paused")
	assert.True(t, errors.As(BookUpdate{Status: &bad}.Validate(), &vErr))
}

func TestParseStatusAndFilter(t *testing.T) {
	s, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusWishList, s)

	s, err = ParseStatus("Read")
	require.NoError(t, err)
	assert.Equal(t, StatusRead, s)

	_, err = ParseStatus("read")
	assert.Error(t, err)

	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("Wish List")
	require.NoError(t, err)
	assert.Equal(t, Filter(StatusWishList), f)

	_, err = ParseFilter("Favourites")
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestReadingList_CloneAndContains(t *testing.T) {
	l := ReadingList{ID: "l1", Books: []Book{{ID: "b1"}}}
	c := l.Clone()
	c.Books[0].Title = "changed"

	assert.True(t, l.Contains("b1"))
	assert.False(t, l.Contains("b2"))
	assert.Equal(t, "", l.Books[0].Title)
}

func TestStorageError(t *testing.T) {
	assert.Nil(t, NewStorageError("op", nil))

	cause := errors.New("connection refused")
	err := NewStorageError("fetch books", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage: fetch books: connection refused", err.Error())
}
