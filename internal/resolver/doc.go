// Package resolver composes the provider adapters into fallback chains for
// countries, weather and news.
//
// Each resolver comes in two profiles. The client profile puts the proxy
// first, so a reachable proxy answers every request; the server profile is
// what the proxy itself runs. Resolvers never return upstream errors: an
// exhausted chain yields an empty list or a nil snapshot.
package resolver
