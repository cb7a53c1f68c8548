// Package redis connects to a Redis server with retry and exposes a
// readiness probe. It exists so services share one env-driven way to dial
// Redis instead of duplicating ParseURL and ping loops.
package redis
