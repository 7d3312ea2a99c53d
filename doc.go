// Package auth provides the account and session primitives of the task
// service: bcrypt password hashing, JWT bearer token issuance, a bun backed
// user store and the fiber controller for account creation, login and logout.
//
// Sessions:
//   - Every user holds at most one token. Account creation and login store a
//     freshly minted token, logout clears it.
//   - A token is validated in two steps. TokenService.Validate checks the
//     signature only; SessionResolver.Resolve then looks up the user whose
//     stored token equals the presented one. A signed token that was rotated
//     or cleared therefore stops resolving a session.
//   - Tokens carry no expiration.
//
// Errors are go-errors values; HTTPErrorHandler maps them to status codes.
package auth
