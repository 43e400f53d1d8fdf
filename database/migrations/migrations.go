// Package migrations contains all database migration files. Each migration
// registers itself in an init(); cmd/canteen imports this package so every
// migration is known at CLI startup.
package migrations
