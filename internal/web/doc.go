// Package web serves the VibeCheck pages and JSON endpoints.
//
// Pages are rendered server-side from embedded html/template files. Every
// page shares templates/layout.html, which renders the navigation links for
// the current path and a logout button for signed-in users.
//
// # Routes
//
//	GET  /                 landing page (guests only)
//	GET  /auth?mode=...    login or register form (guests only)
//	POST /auth/login       sign in, rate limited per client IP
//	POST /auth/register    register then sign in, rate limited per client IP
//	POST /auth/logout      end the session
//	GET  /dashboard        today's mood, playlist, quote and journal
//	POST /dashboard/mood   submit today's mood
//	POST /journal          save today's journal entry
//	GET  /tracker          mood tracker placeholder
//	GET  /settings         account settings placeholder
//	GET  /api/moods        mood catalog as JSON
//	GET  /api/today        today's record as JSON
//	GET  /healthz          liveness
//
// Protected routes go through [server.RequireSession] and guest-only routes
// through [server.RedirectIfSession]. Redirects are issued before any body is
// written.
package web
