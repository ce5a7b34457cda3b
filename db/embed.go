// Package db provides embedded database migrations and seed data.
package db

import "embed"

// Migrations holds the versioned golang-migrate files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
