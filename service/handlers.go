package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"books/cache"
	"books/db"
	"books/models"
)

const BOOK_NOT_FOUND = "Book not found"

type LibraryService struct {
	library db.LibraryManager
	indexer db.LibraryIndexer
	cacher  cache.RequestCacher
}

type Option func(*LibraryService)

// WithIndexer mirrors every created book into indexer.
func WithIndexer(indexer db.LibraryIndexer) Option {
	return func(service *LibraryService) {
		service.indexer = indexer
	}
}

// WithRequestCacher records /books requests made with ?username= and enables /activity.
func WithRequestCacher(cacher cache.RequestCacher) Option {
	return func(service *LibraryService) {
		service.cacher = cacher
	}
}

func NewLibraryService(library db.LibraryManager, opts ...Option) *LibraryService {
	service := &LibraryService{library: library}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (service *LibraryService) GetBooks(c *gin.Context) {
	respond(c, http.StatusOK, models.NewBookResponses(service.library.List()))
}

func (service *LibraryService) GetBookById(c *gin.Context) {
	params := boundParams[models.BookParams](c)

	book, ok := service.library.GetById(params.Id)
	if !ok {
		c.String(http.StatusNotFound, BOOK_NOT_FOUND)
		return
	}

	respond(c, http.StatusOK, models.NewBookResponse(book))
}

func (service *LibraryService) CreateBook(c *gin.Context) {
	request := boundBody[models.BookRequest](c)

	book := service.library.Create(request.Title, request.Author)

	if service.indexer != nil {
		// the in-memory library stays the source of truth
		if err := service.indexer.Index(c.Request.Context(), book); err != nil {
			requestLogger(c).Warn("mirroring book to search index failed",
				slog.Int("id", book.Id), slog.String("error", err.Error()))
		}
	}

	respond(c, http.StatusCreated, models.NewBookResponse(book))
}

func (service *LibraryService) Activity(c *gin.Context) {
	params := boundParams[models.ActivityParams](c)

	userRequests, err := service.cacher.Read(params.Username)
	if err != nil {
		requestLogger(c).Error("reading user activity failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, failure(http.StatusInternalServerError, INTERNAL_ERROR))
		return
	}

	userRequestsRaw := make([]models.UserRequest, 0, len(userRequests))
	for _, request := range userRequests {
		var userRequest models.UserRequest
		if err := json.Unmarshal([]byte(request), &userRequest); err != nil {
			requestLogger(c).Warn("skipping malformed activity entry", slog.String("error", err.Error()))
			continue
		}
		userRequestsRaw = append(userRequestsRaw, userRequest)
	}

	respond(c, http.StatusOK, userRequestsRaw)
}

// CacheUserRequest never fails a request because caching it failed.
func (service *LibraryService) CacheUserRequest(c *gin.Context) {
	username := c.Query("username")

	if username != "" {
		userRequest := models.UserRequest{
			Method:    c.Request.Method,
			Route:     c.Request.URL.Path,
			RequestId: requestId(c),
			Time:      time.Now().UTC(),
		}

		request, err := json.Marshal(userRequest)
		if err == nil {
			err = service.cacher.Write(username, request)
		}
		if err != nil {
			requestLogger(c).Warn("caching user request failed", slog.String("error", err.Error()))
		}
	}

	c.Next()
}
