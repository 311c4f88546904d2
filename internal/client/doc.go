// Package client implements the query cache and mutation orchestrator
// used by API consumers to keep list and detail views consistent with
// server state across concurrent edits, deletes, and comment operations.
//
// Reads go through Query, which caches results per operation+arguments
// key and deduplicates concurrent fetches. Writes go through Mutate,
// which applies an optimistic patch to the cached data before the server
// call resolves, rolls the patch back if the call fails, and always
// finishes by invalidating the key so the next read refetches canonical
// state from the server.
//
// The cache is an explicit object with a defined lifecycle: construct it
// with New at application start, pass it where it is needed, and Close it
// on shutdown. Consumers must treat data returned from the cache as
// immutable; all updates go through the orchestrator.
package client
