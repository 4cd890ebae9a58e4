// Package key manages conversation keys on the client. It resolves a
// usable key handle through three tiers, cheapest first: the in-process
// map, the durable local cache, then the conversation row's stored
// material (which also populates the cache for next time).
package key
