// Package app contains the application services of the signing vault:
// key generation with directory registration, directory management and
// document signing and verification.
package app
