package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olivere/elastic/v7"

	"books/models"
)

const INDEX_NAME = "books"

type ElasticLibraryIndexer struct {
	IndexName     string
	ElasticClient *elastic.Client
}

func NewElasticLibraryIndexer(elasticClient *elastic.Client, indexName string) *ElasticLibraryIndexer {
	if indexName == "" {
		indexName = INDEX_NAME
	}
	return &ElasticLibraryIndexer{indexName, elasticClient}
}

// Index upserts the book under its id, so indexing the same book twice is harmless.
func (library *ElasticLibraryIndexer) Index(ctx context.Context, book models.Book) error {
	_, err := library.ElasticClient.
		Index().
		Index(library.IndexName).
		Id(strconv.Itoa(book.Id)).
		BodyJson(book).
		Do(ctx)

	if err != nil {
		return fmt.Errorf("index book %d: %w", book.Id, err)
	}
	return nil
}

// IndexAll mirrors every book of the library, stopping at the first failure.
func IndexAll(ctx context.Context, library LibraryManager, indexer LibraryIndexer) error {
	for _, book := range library.List() {
		if err := indexer.Index(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
