// Package zayo provides types, interfaces, and helpers for working with the
// Zayo service-management API (maintenance cases and service inventory).
//
// # Overview
//
// The zayo package defines the record types (Case, Impact, Notification,
// NotificationDetail, Service) and the interfaces for resource-oriented
// clients (CasesClient, ImpactsClient, NotificationsClient, ServicesClient).
// A concrete implementation is provided by the zayoclient package, which
// authenticates, builds the transport, and wires the paginator. Most consumers
// should import zayoclient to construct a client and then use the interfaces
// exposed here.
//
// Getting a client
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
//	  cfg := zayo.DefaultConfig()
//	  cfg.ClientID, cfg.ClientSecret = "id", "secret"
//
//	  cli, err := zayoclient.New(ctx, cfg)
//	  if err != nil { log.Fatal(err) }
//
//	  cases, err := cli.Cases().List(ctx, zayo.NewRequestOptions().WithOrderBy(zayo.OrderByDateSooner))
//	  if err != nil { log.Fatal(err) }
//	  _ = cases
//	}
//
// # Pagination
//
// Every list call issues a zero-row count request, plans pages of at most
// MaxTopCount records, and fetches them concurrently. Records come back in
// page order. Pages that could not be fetched after their retries are listed
// in Pagination.FailedPages rather than failing the whole call; check
// ListResponse.Incomplete when completeness matters.
//
// # Errors
//
// Failures are reported as ConfigError, AuthError, UpstreamError or
// TransientNetworkError. Helpers such as IsNotFound, IsUnauthorized and
// IsTransient make it easy to branch on them.
package zayo
