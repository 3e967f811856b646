// Package auth authenticates users and decides which pages a session may see.
//
// A [Provider] issues and resolves sessions. [LocalProvider] keeps users and
// sessions in sqlite with bcrypt password hashes, and the GoTrue client in
// package services talks to a hosted Supabase project. [Guard] turns a
// session token into a [Decision] for protected and guest-only pages, and
// [Message] maps provider failures to the text shown in the login form.
package auth
