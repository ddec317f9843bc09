// Package auth provides account registration, credential checks and
// bearer tokens for shiperd.
//
// It implements:
//   - Argon2id password hashing in PHC string format
//   - HS256 JWT access tokens carrying the user's ID and username
//   - Registration rules for usernames, emails and passwords
//   - User persistence over database/sql (SQLite or PostgreSQL)
//
// Tokens are verified by signature and expiry only; there is no session
// store and no revocation. Every authenticated user may perform every
// mutation.
package auth
