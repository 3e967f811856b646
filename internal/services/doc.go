// Package services implements clients for the external systems vibecheck talks to.
//
// # Generative providers
//
// [OpenAIProvider] implements [Provider] on top of any OpenAI compatible chat completions
// endpoint, including Gemini's compatibility layer. Calls are made once, with no retries.
//
// # Hosted auth
//
// [GoTrueService] talks to a Supabase GoTrue server over REST. Calls made on behalf of a
// signed-in user go through an [oauth2] client built from the user's access token.
//
// # Raw HTTP
//
// [APIService] is the small JSON-over-HTTP client both of the above build on where the SDK
// does not cover the endpoint.
//
// # Error Handling
//
// Services wrap failures with typed errors from the shared package:
//   - [shared.ErrProviderRequest] : the generative provider call failed
//   - [shared.ErrEmptyCompletion] : the provider answered with no text
//   - [shared.ErrAuthFailed] : the auth server rejected the request
//   - [shared.ErrNotAuthenticated] : no usable access token
package services
