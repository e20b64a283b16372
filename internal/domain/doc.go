// Package domain defines the core business entities of the task manager:
// users, tasks, and the transient assignment notifications derived from
// task mutations. Entities validate themselves; persistence and transport
// concerns live elsewhere.
package domain
