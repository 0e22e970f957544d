// Package localstore implements history persistence as a single JSON
// file, for deployments that run without a database.
package localstore
