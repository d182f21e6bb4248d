package internal

import (
	esv7 "github.com/elastic/go-elasticsearch/v7"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// NewElasticSearch instantiates the ElasticSearch client and checks the cluster is reachable.
func NewElasticSearch(conf config.Elasticsearch) (es *esv7.Client, err error) {
	es, err = esv7.NewClient(esv7.Config{
		Addresses: []string{conf.URL},
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "elasticsearch.Open")
	}

	res, err := es.Info()
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "es.Info")
	}

	defer func() {
		err = res.Body.Close()
	}()

	if res.IsError() {
		return nil, internal.NewErrorf(internal.ErrorCodeUnknown, "es.Info %s", res.Status())
	}

	return es, nil
}
