// Package wapi implements a client for the WEDOS WAPI, the JSON interface
// for managing services hosted at WEDOS, with typed wrappers for the DNS
// command family.
//
// Key features:
//   - Hourly SHA-1 request signing exactly as the API defines it
//   - Typed DNS operations: domain listing, row listing, add, delete, commit
//   - Lazy domain and row sequences built on iter.Seq2
//   - A generic Do escape hatch for commands without a typed wrapper
//   - Sentinel errors separating authentication, transport, and protocol
//     failures
//   - Optional rate limiting and instrumentation hooks
//
// # Usage
//
// Create a client with the account login and WAPI password. The library
// never reads environment variables; hand it credentials explicitly:
//
//	client, err := wapi.NewClient(user, secret)
//	if err != nil {
//	    return err
//	}
//
//	for domain, err := range client.Domains(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(domain.Name)
//	}
//
// Row changes are staged server-side and go live only after a commit:
//
//	err = client.AddRecord(ctx, "example.com", wapi.RecordSpec{
//	    Name: "www",
//	    Type: wapi.TypeA,
//	    Data: "192.0.2.10",
//	})
//	if err != nil {
//	    return err
//	}
//	if err := client.CommitDomain(ctx, "example.com"); err != nil {
//	    return err
//	}
//
// # Authentication
//
// Every request carries a token derived from the login, the WAPI password,
// and the current hour on the Europe/Prague clock. Tokens are recomputed
// per request and never cached, so a client constructed once keeps working
// across hour boundaries. The WAPI interface must be enabled for the
// account and the caller's IP address allowlisted; rejections surface as
// [ErrUnauthorized].
//
// # Errors
//
// Construction problems are reported as [*ConfigError]. Failures of issued
// requests match exactly one of the sentinels [ErrUnauthorized],
// [ErrUnavailable] (transport), or [ErrMalformedResponse] (undecodable
// payload), with API-level failures carried as [*APIError]. The client
// never retries; callers own that policy.
//
// # Test mode
//
// Clients built with [WithTestMode] send every command with the WAPI test
// flag, which makes the API validate but not execute it. Useful for dry
// runs against the production endpoint.
package wapi
