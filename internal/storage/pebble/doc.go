// Package pebblestore wraps a Pebble database with the small helper surface
// Relay needs for its resolution journal: durable single-key writes, batched
// updates, and prefix iteration. The wrapper owns the sync policy so callers
// never pass pebble.WriteOptions around.
package pebblestore
