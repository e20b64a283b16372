// Package mocks provides hand-written test doubles for the application's
// store and broadcast interfaces. Each mock exposes Fn fields for custom
// behavior and records its calls for verification.
package mocks
