// Package events defines the realtime broadcast contract: the event names
// pushed to connected clients, the Broadcaster interface the mutation
// service publishes through, and the bounded notification feed clients use
// to hold recent notifications. Delivery is best-effort at-most-once per
// connected session; there is no replay or catch-up.
package events
