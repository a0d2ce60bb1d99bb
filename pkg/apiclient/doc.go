// Package apiclient is a thin JSON HTTP client bound to a base URL.
//
// A Client carries default headers, an optional bearer token, and a default
// per-request timeout. Each call accepts RequestOptions for query
// parameters, extra headers, a timeout override, and NoCache, which sends
// Cache-Control/Pragma no-cache headers and bypasses the optional in-memory
// LRU of GET responses enabled with WithCache.
//
//	client := apiclient.New("https://api.example.com",
//		apiclient.WithToken(token),
//		apiclient.WithTimeout(5*time.Second),
//	)
//
//	var users []User
//	err := client.Get(ctx, "users", &users, apiclient.WithParam("page", "2"))
//
// # Errors
//
// Non-2xx responses return *TransportError whose message is the server's
// JSON "message" field when present. Bodies that cannot be decoded return
// *ParseError. A timeout returns ErrTimeout, while cancellation of the
// caller's context returns the context error unchanged so callers can tell
// a superseded request from a failed one.
package apiclient
