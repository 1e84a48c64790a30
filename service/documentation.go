package service

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"books/docs"
)

const (
	DOCUMENTATION_PATH = "/documentation"
	SWAGGER_JSON_PATH  = "/swagger.json"
)

func setupDocumentation(routes *gin.Engine, info docs.Info, endpoints []docs.Endpoint) error {
	doc, err := docs.Build(info, endpoints)
	if err != nil {
		return fmt.Errorf("build api documentation: %w", err)
	}

	swaggerJSON, err := docs.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode api documentation: %w", err)
	}

	routes.GET(SWAGGER_JSON_PATH, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", swaggerJSON)
	})

	swaggerUI := ginSwagger.WrapHandler(swaggerFiles.NewHandler(),
		ginSwagger.URL(SWAGGER_JSON_PATH),
		ginSwagger.DocExpansion("list"),
	)
	indexPage := DOCUMENTATION_PATH + "/index.html"
	toIndexPage := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, indexPage)
	}

	routes.GET(DOCUMENTATION_PATH+"/*any", func(c *gin.Context) {
		if c.Param("any") == "/" {
			toIndexPage(c)
			return
		}
		swaggerUI(c)
	})
	routes.GET(DOCUMENTATION_PATH, toIndexPage)

	return nil
}
