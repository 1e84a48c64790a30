package config

import (
	"fmt"

	"github.com/olivere/elastic/v7"
)

func SetupElasticSearch(cfg *Config) (*elastic.Client, error) {
	elasticClient, err := elastic.NewClient(
		elastic.SetURL(cfg.Elastic.URL),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch at %s: %w", cfg.Elastic.URL, err)
	}

	return elasticClient, nil
}
