// Package qb provides types, interfaces, and helpers for working with the
// Quickbase records REST API.
//
// # Overview
//
// The qb package defines the wire types (WireRecord, Field, QueryResult,
// UpsertResult), the record codec (FieldMap, Flatten, Normalize), the error
// taxonomy, and the pluggable response cache (Cache, CacheManager, memory
// and NATS KV backends). A concrete client implementation is provided by the
// qbclient package, which wires configuration, transport, and temporary-token
// authentication. Most consumers should import qbclient to construct a client
// and then interact with the client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/quickbase-client/pkg/qb"
//	  "github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := qbclient.New(&qb.Config{Realm: "acme.quickbase.com", UserToken: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Records().Query(ctx, &qb.QueryRequest{
//	    From:   "bqx7xre9z",
//	    Select: []int{3, 6, 7},
//	    Where:  "{6.EX.'Bob'}",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = res
//	}
//
// # Records and flattening
//
// The API speaks a field-indexed wire format: each row maps a field id to a
// {value} wrapper. QueryResult keeps the raw payload and reshapes it on
// demand; FlatRecords returns rows keyed by field id or label, with the
// Record ID# surfaced under the synthesized "rid" key. Normalize goes the
// other way for upserts and accepts a mix of raw and pre-wrapped values.
//
// # Errors
//
// Non-success responses are represented by APIError; failed token fetches by
// AuthError; strict upserts with line errors by PartialUpsertError. Helpers
// such as IsNotFound and IsAmbiguous make it easy to branch on lookup
// cardinality failures.
//
// # Caching
//
// Query responses can be cached with a caller-supplied TTL. The Cache
// abstraction has memory, NATS JetStream KV, and no-op backends, plus a
// CacheChain for layering; CacheManager adds statistics and guarantees that
// cache trouble never fails a query.
package qb
