package models

import "time"

// Book is the stored catalog record. Only the store creates and owns it.
type Book struct {
	Id        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// BookParams is the path schema of /books/:id.
type BookParams struct {
	Id int `uri:"id" json:"id" description:"The id of the book" example:"1"`
}

// BookRequest is the payload schema of POST /books.
type BookRequest struct {
	Title  string `json:"title" binding:"required" description:"The title of the book" example:"Dune"`
	Author string `json:"author" binding:"required" description:"The author of the book" example:"Frank Herbert"`
}

// BookResponse is the only shape a book leaves the service in.
type BookResponse struct {
	Id     int    `json:"id" binding:"required" example:"3"`
	Title  string `json:"title" binding:"required" example:"Dune"`
	Author string `json:"author" binding:"required" example:"Frank Herbert"`
}

func NewBookResponse(book Book) BookResponse {
	return BookResponse{
		Id:     book.Id,
		Title:  book.Title,
		Author: book.Author,
	}
}

func NewBookResponses(books []Book) []BookResponse {
	responses := make([]BookResponse, len(books))
	for i, book := range books {
		responses[i] = NewBookResponse(book)
	}
	return responses
}
