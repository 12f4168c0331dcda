// Package kleio is the HTTP client for the Kleio collection server.
//
// Every mutation on the server answers with the full refreshed collection
// snapshot, so the client surface is uniform: send the change, decode the
// snapshot, hand it to the caller to install. Requests carry a bearer token
// and an X-Request-ID pulled from the context (or freshly generated) so
// server logs correlate with client logs. HTTP failures map onto the
// services error taxonomy.
package kleio
