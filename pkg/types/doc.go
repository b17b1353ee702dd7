// Package types defines the Store interface, entity types, result reports,
// and standard errors for the routedeck table store.
package types
