// Package ws implements the realtime broadcast channel over websockets.
// The Hub fans task events out to every connected session and notification
// events to per-user private channels that sessions join explicitly by
// announcing a user id. Delivery is best-effort at-most-once: a slow or
// disconnected session simply misses events, and there is no replay.
package ws
