// Package service contains the application's business logic. TaskService is
// the core of the system: it validates and applies task mutations, derives
// assignment notifications, and fans both out through the Broadcaster.
// Services own no persistent state; storage is delegated to the store
// interfaces and publishing to the events.Broadcaster.
package service
