// Package zayoclient provides the primary entry point for constructing a
// Zayo service-management API client that implements the zayo.Client
// interface.
//
// New logs in once with the OAuth2 client-credentials grant, then wires the
// authenticated transport, the paginator and the optional record cache.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/zayo-client/pkg/zayo"
//	  "github.com/fivetwenty-io/zayo-client/pkg/zayoclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Credentials from ZAYO_CLIENT_ID and ZAYO_CLIENT_SECRET.
//	  cli, err := zayoclient.NewFromEnv(ctx)
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  details, err := cli.Cases().Details(ctx, "TTN-0003153584")
//	  if err != nil { log.Fatal(err) }
//	  if !details.Found { log.Print("no such case") }
//	}
//
// The token is not refreshed. Long-lived programs should build a new client
// when calls start failing with zayo.IsUnauthorized.
package zayoclient
