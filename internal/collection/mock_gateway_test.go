package collection

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrlokans/bookshelf/internal/library"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FetchAllBooks(ctx context.Context) ([]library.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]library.Book), args.Error(1)
}

func (m *mockGateway) CreateBook(ctx context.Context, form library.BookFormData) (library.Book, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(library.Book), args.Error(1)
}

func (m *mockGateway) UpdateBook(ctx context.Context, id string, update library.BookUpdate) (library.Book, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(library.Book), args.Error(1)
}

func (m *mockGateway) DeleteBook(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGateway) FetchAllReadingLists(ctx context.Context) ([]library.ReadingList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]library.ReadingList), args.Error(1)
}

func (m *mockGateway) CreateReadingList(ctx context.Context, name string) (library.ReadingList, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(library.ReadingList), args.Error(1)
}

func (m *mockGateway) DeleteReadingList(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGateway) AddBookToList(ctx context.Context, listID, bookID string) error {
	args := m.Called(ctx, listID, bookID)
	return args.Error(0)
}

func (m *mockGateway) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	args := m.Called(ctx, listID, bookID)
	return args.Error(0)
}
