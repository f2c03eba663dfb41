// Package auth issues and validates HS256 access tokens and verifies the
// bcrypt-hashed client credentials exchanged for them.
package auth
