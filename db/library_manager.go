package db

import (
	"context"

	"books/models"
)

// LibraryManager owns the book collection.
// A false from GetById means no book has that id; it is not an error.
type LibraryManager interface {
	List() []models.Book
	GetById(id int) (models.Book, bool)
	Create(title, author string) models.Book
}

// LibraryIndexer mirrors books into a secondary search index.
type LibraryIndexer interface {
	Index(ctx context.Context, book models.Book) error
}
