// Package providers implements the LLM transports gitscribe can plan
// commits with.
//
// A provider is a [Completer]: one blocking call from a prompt to the
// model's raw text reply. Network, auth, and rate-limit failures are
// reported as [UnavailableError] and are not retried; planning is
// low-volume enough that the caller simply fails the invocation.
package providers
