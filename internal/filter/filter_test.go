package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/library"
)

func sampleBooks() []library.Book {
	return []library.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Status: library.StatusReading},
		{ID: "2", Title: "Emma", Author: "Jane Austen", Status: library.StatusRead},
		{ID: "3", Title: "Children of Dune", Author: "Frank Herbert", Status: library.StatusWishList},
		{ID: "4", Title: "Straße der Ölsardinen", Author: "John Steinbeck", Status: library.StatusReading},
	}
}

func ids(books []library.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	books := sampleBooks()

	tests := []struct {
		name   string
		query  string
		filter library.Filter
		want   []string
	}{
		{"no query all books keeps order", "", library.FilterAll, []string{"1", "2", "3", "4"}},
		{"case-insensitive title", "dune", library.FilterAll, []string{"1", "3"}},
		{"matches author", "AUSTEN", library.FilterAll, []string{"2"}},
		{"status filter", "", library.Filter(library.StatusReading), []string{"1", "4"}},
		{"query and filter compose", "herbert", library.Filter(library.StatusWishList), []string{"3"}},
		{"unicode folding", "ÖLSARDINEN", library.FilterAll, []string{"4"}},
		{"whitespace query matches literally", "of ", library.FilterAll, []string{"3"}},
		{"no matches", "tolkien", library.FilterAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(books, tt.query, tt.filter)))
		})
	}
}

func TestApply_ReturnsNewSlice(t *testing.T) {
	books := sampleBooks()
	out := Apply(books, "", library.FilterAll)
	out[0].Title = "changed"
	assert.Equal(t, "Dune", books[0].Title)

	assert.NotNil(t, Apply(nil, "", library.FilterAll))
}

func TestMatchesQuery(t *testing.T) {
	b := library.Book{Title: "Dune", Author: "Frank Herbert"}
	assert.True(t, MatchesQuery(b, "dune"))
	assert.True(t, MatchesQuery(b, ""))
	assert.True(t, MatchesQuery(b, "ank her"))
	assert.False(t, MatchesQuery(b, "emma"))
}

func TestCurrentlyReading(t *testing.T) {
	assert.Equal(t, []string{"1", "4"}, ids(CurrentlyReading(sampleBooks())))
	assert.Empty(t, CurrentlyReading(nil))
}

func TestCounts(t *testing.T) {
	counts := Counts(sampleBooks())
	assert.Equal(t, 4, counts[library.FilterAll])
	assert.Equal(t, 2, counts[library.Filter(library.StatusReading)])
	assert.Equal(t, 1, counts[library.Filter(library.StatusRead)])
	assert.Equal(t, 1, counts[library.Filter(library.StatusWishList)])

	empty := Counts(nil)
	assert.Len(t, empty, 4)
	assert.Zero(t, empty[library.FilterAll])
}
