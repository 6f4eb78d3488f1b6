// Package persistence provides the database repository of the public key directory.
// It uses GORM as the ORM layer on top of SQLite or PostgreSQL and validates
// entries before writing them.
package persistence
