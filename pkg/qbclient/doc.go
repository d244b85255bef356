// Package qbclient constructs ready-to-use Quickbase API clients.
//
// qbclient wires the pieces defined in package qb: the retrying HTTP
// transport, the temporary-token credential cache, and the response
// cache. The zero-friction path:
//
//	cli, err := qbclient.NewWithUserToken("acme.quickbase.com", os.Getenv("QB_USER_TOKEN"))
//	if err != nil { ... }
//
//	res, err := cli.Records().Query(ctx, &qb.QueryRequest{
//	  From:   "bqx7xre9z",
//	  Select: []int{3, 6},
//	  Where:  "{6.EX.'Bob'}",
//	})
//
// For custom caching, logging, or retry behavior, build a qb.Config and
// call New.
package qbclient
