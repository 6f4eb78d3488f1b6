// Package models holds the gorm row types of the key directory and their
// conversions to and from the domain key entries.
package models
