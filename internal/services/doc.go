// Package services holds the error taxonomy and context plumbing shared by
// Clio's remote service clients.
//
// Sentinel errors classify failures (validation, configuration, not found,
// timeout, transient) so command code can decide between surfacing a message
// and retrying. Wrap attaches component and operation context while keeping
// the sentinel reachable through errors.Is. Request correlation IDs travel on
// the context and end up both in outbound headers and structured logs.
package services
