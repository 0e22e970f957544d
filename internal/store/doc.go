// Package store defines the persistence interfaces used by the
// application core. Implementations live under internal/platform
// (localstore for the JSON file backend, postgres for the database
// backend); the controller depends only on the interfaces here.
package store
