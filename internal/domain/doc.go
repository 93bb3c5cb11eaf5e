// Package domain models country, weather, and news data served by the
// country explorer.
//
// # Data Sources
//
// Country records come from several upstream providers whose schemas drift
// from one another:
//
//	REST Countries v3.1 (https://restcountries.com/v3.1)
//	  name.common / name.official, capital as an array, languages and
//	  currencies as keyed objects, flags.svg / flags.png.
//	mledoze/countries mirrors (jsDelivr, unpkg, raw.githubusercontent)
//	  same general shape as REST Countries, no flag URLs (emoji only).
//	Packaged and bundled datasets
//	  may carry population and area under other keys and as strings,
//	  e.g. {"pop_est": "1,234,567", "landArea": "390 km2"}.
//
// Every upstream record is held as a [RawCountry] and turned into exactly one
// [CountryRecord] by [Normalize].
//
// # Numeric Coercion
//
// Population and area are coerced by one rule (see [NumberOr]):
//
//	finite number       -> kept as is
//	string              -> every rune outside [0-9.-] removed, then parsed
//	anything else       -> fallback (0 for population, null for area)
//
// A null area means "unknown" and is distinct from a zero area.
//
// # Identity
//
// CCA3 (ISO 3166-1 alpha-3) is the identity key. Two records describe the same
// country iff their CCA3 codes match; favorites and border links key off it.
package domain
