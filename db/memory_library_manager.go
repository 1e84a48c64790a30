package db

import (
	"sync"
	"time"

	"books/models"
)

var SeedBooks = []models.BookRequest{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee"},
}

// MemoryLibraryManager keeps the books in insertion order for the lifetime of the process.
type MemoryLibraryManager struct {
	mtx    sync.RWMutex
	books  []models.Book
	lastId int
	now    func() time.Time
}

func NewMemoryLibraryManager(seed ...models.BookRequest) *MemoryLibraryManager {
	library := &MemoryLibraryManager{now: time.Now}
	for _, book := range seed {
		library.Create(book.Title, book.Author)
	}
	return library
}

func (library *MemoryLibraryManager) List() []models.Book {
	library.mtx.RLock()
	defer library.mtx.RUnlock()

	books := make([]models.Book, len(library.books))
	copy(books, library.books)
	return books
}

func (library *MemoryLibraryManager) GetById(id int) (models.Book, bool) {
	library.mtx.RLock()
	defer library.mtx.RUnlock()

	for _, book := range library.books {
		if book.Id == id {
			return book, true
		}
	}
	return models.Book{}, false
}

// Create never reuses an id: ids come from a counter, not from the collection size.
func (library *MemoryLibraryManager) Create(title, author string) models.Book {
	library.mtx.Lock()
	defer library.mtx.Unlock()

	library.lastId++
	book := models.Book{
		Id:        library.lastId,
		Title:     title,
		Author:    author,
		CreatedAt: library.now().UTC(),
	}
	library.books = append(library.books, book)
	return book
}
