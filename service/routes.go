package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"books/docs"
	"books/models"
)

// Route binds a documented endpoint to its handler.
type Route struct {
	docs.Endpoint
	Handler gin.HandlerFunc
}

func (service *LibraryService) BookRoutes() []Route {
	return []Route{
		{
			Endpoint: docs.Endpoint{
				Method:      http.MethodGet,
				Path:        "/books",
				Description: "Get all books",
				Tags:        []string{"books"},
				Response:    []models.BookResponse{},
			},
			Handler: service.GetBooks,
		},
		{
			Endpoint: docs.Endpoint{
				Method:      http.MethodGet,
				Path:        "/books/:id",
				Description: "Get a book by id",
				Tags:        []string{"books"},
				Params:      models.BookParams{},
				Response:    models.BookResponse{},
				Failures: map[int]string{
					http.StatusBadRequest: "Invalid request params input",
					http.StatusNotFound:   BOOK_NOT_FOUND,
				},
			},
			Handler: service.GetBookById,
		},
		{
			Endpoint: docs.Endpoint{
				Method:      http.MethodPost,
				Path:        "/books",
				Description: "Add a new book",
				Tags:        []string{"books"},
				Body:        models.BookRequest{},
				Response:    models.BookResponse{},
				Status:      http.StatusCreated,
				Failures: map[int]string{
					http.StatusBadRequest: "Invalid request payload input",
				},
			},
			Handler: service.CreateBook,
		},
	}
}

func (service *LibraryService) ActivityRoute() Route {
	return Route{
		Endpoint: docs.Endpoint{
			Method:      http.MethodGet,
			Path:        "/activity/:username",
			Description: "Get the latest requests of a user",
			Tags:        []string{"activity"},
			Params:      models.ActivityParams{},
			Response:    []models.UserRequest{},
		},
		Handler: service.Activity,
	}
}

func SetupRoutes(service *LibraryService, info docs.Info) (*gin.Engine, error) {
	routes := gin.New()
	routes.Use(RequestId, RequestLogger, gin.CustomRecovery(Recovery))
	routes.NoRoute(NotFound)

	var endpoints []docs.Endpoint
	handle := func(group gin.IRoutes, route Route) {
		handlers := []gin.HandlerFunc{BindRequest(route.Endpoint), route.Handler}
		group.Handle(route.Method, route.Path, handlers...)
		if route.Method == http.MethodGet {
			group.Handle(http.MethodHead, route.Path, handlers...)
		}
		endpoints = append(endpoints, route.Endpoint)
	}

	cachedRoutes := routes.Group("/")
	if service.cacher != nil {
		handle(routes, service.ActivityRoute())
		cachedRoutes.Use(service.CacheUserRequest)
	}

	for _, route := range service.BookRoutes() {
		handle(cachedRoutes, route)
	}

	if err := setupDocumentation(routes, info, endpoints); err != nil {
		return nil, err
	}

	return routes, nil
}
