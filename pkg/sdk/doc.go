// Package companydex provides a Go client for the companydex company
// directory, backed by Redis Stack (RediSearch + RedisJSON) or Elasticsearch.
//
// The client talks to the document store directly; no HTTP server is needed.
//
//	client, _ := companydex.New(ctx, companydex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//	_ = client.EnsureIndex(ctx)
//
//	acme, _ := client.Companies().Create(ctx, companydex.CompanyInput{
//	    Name:     "Acme",
//	    Industry: "Software",
//	    Tags:     []string{"ai", "b2b"},
//	})
//
//	page, _ := client.Companies().List(ctx, companydex.Query{
//	    Industry: "Software",
//	    Tags:     []string{"ai"},
//	    Sort:     "-size,name",
//	    Limit:    20,
//	})
//
// Errors from store failures match ErrStoreUnavailable or ErrStoreQuery
// with errors.Is; unknown ids match ErrNotFound.
package companydex
