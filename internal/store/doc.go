// Package store provides abstractions for data persistence: the interfaces
// the service layer depends on, the sentinel errors implementations map
// their backend failures to, and transaction plumbing shared by all
// implementations.
package store
