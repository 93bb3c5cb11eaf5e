package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FlagCDN is the base URL used to synthesize a flag from a two-letter code.
const FlagCDN = "https://flagcdn.com"

var (
	populationKeys = []string{"population", "pop_est", "popEst", "Population", "pop"}
	areaKeys       = []string{"area", "landArea", "Area"}
)

// Normalize maps a raw country record of any supported shape to a
// CountryRecord. It never fails: missing or malformed fields become empty
// strings, zero population, or a null area.
func Normalize(raw RawCountry) CountryRecord {
	common, official := names(raw["name"])
	cca2 := stringOf(raw["cca2"])

	slices := func(v any, item func(any) string) []string {
		out := listOf(v, item)
		if out == nil {
			out = []string{}
		}
		return out
	}

	return CountryRecord{
		Name:         common,
		OfficialName: official,
		CCA2:         cca2,
		CCA3:         stringOf(raw["cca3"]),
		Capital:      capitalOf(raw["capital"]),
		Region:       stringOf(raw["region"]),
		Subregion:    stringOf(raw["subregion"]),
		Population:   NumberOr(coalesce(raw, populationKeys), 0),
		Area:         OptionalNumber(coalesce(raw, areaKeys)),
		Flag:         flagOf(raw, cca2),
		Languages:    slices(raw["languages"], plainString),
		Currencies:   slices(raw["currencies"], currencyName),
		Borders:      slices(raw["borders"], plainString),
		LatLng:       latLngOf(raw["latlng"]),
	}
}

// NormalizeAll normalizes a batch, keeping the first record for each CCA3 so
// the code stays unique within the batch. Records without a CCA3 are kept.
func NormalizeAll(raws []RawCountry) []CountryRecord {
	out := make([]CountryRecord, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		rec := Normalize(raw)
		if rec.CCA3 != "" {
			if _, dup := seen[rec.CCA3]; dup {
				continue
			}
			seen[rec.CCA3] = struct{}{}
		}
		out = append(out, rec)
	}
	return out
}

// MirrorCompat returns a copy of raw whose population and area are coalesced
// from the synonym keys mirror datasets use. Area is null when unparseable.
func MirrorCompat(raw RawCountry) RawCountry {
	out := make(RawCountry, len(raw)+2)
	for k, v := range raw {
		out[k] = v
	}
	out["population"] = NumberOr(coalesce(raw, populationKeys), 0)
	if area := OptionalNumber(coalesce(raw, areaKeys)); area != nil {
		out["area"] = *area
	} else {
		out["area"] = nil
	}
	return out
}

// MirrorCompatAll applies MirrorCompat to every record.
func MirrorCompatAll(raws []RawCountry) []RawCountry {
	out := make([]RawCountry, len(raws))
	for i, r := range raws {
		out[i] = MirrorCompat(r)
	}
	return out
}

// CommonName returns name.common of a raw record, or a plain string name.
func CommonName(raw RawCountry) string {
	common, _ := names(raw["name"])
	return common
}

// coalesce returns the first non-nil value among keys.
func coalesce(raw RawCountry, keys []string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func names(v any) (common, official string) {
	switch n := v.(type) {
	case map[string]any:
		return stringOf(n["common"]), stringOf(n["official"])
	case string:
		return n, ""
	}
	return "", ""
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func capitalOf(v any) string {
	switch c := v.(type) {
	case []any:
		if len(c) == 0 {
			return ""
		}
		return plainString(c[0])
	case []string:
		if len(c) == 0 {
			return ""
		}
		return c[0]
	case string:
		return c
	}
	return ""
}

// flagOf prefers flags.svg, then flags.png, then a plain flag string that
// is a URL (emoji flags are not), then the flagcdn image for cca2.
func flagOf(raw RawCountry, cca2 string) string {
	if flags, ok := raw["flags"].(map[string]any); ok {
		if svg := stringOf(flags["svg"]); svg != "" {
			return svg
		}
		if png := stringOf(flags["png"]); png != "" {
			return png
		}
	}
	if flag := strings.TrimSpace(stringOf(raw["flag"])); isURL(flag) {
		return flag
	}
	if cca2 != "" {
		return fmt.Sprintf("%s/%s.svg", FlagCDN, strings.ToLower(cca2))
	}
	return ""
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// listOf accepts either a sequence or a keyed mapping. Mapping values are
// taken in sorted-key order so the result is deterministic for a given input.
func listOf(v any, item func(any) string) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := item(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := item(x[k]); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if x[k] != "" {
				out = append(out, x[k])
			}
		}
		return out
	}
	return nil
}

func plainString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// currencyName reads {"name": "Euro", "symbol": "€"} style entries.
func currencyName(v any) string {
	if m, ok := v.(map[string]any); ok {
		return stringOf(m["name"])
	}
	return plainString(v)
}

func latLngOf(v any) *[2]float64 {
	var pair []any
	switch x := v.(type) {
	case []any:
		pair = x
	case []float64:
		if len(x) != 2 {
			return nil
		}
		return &[2]float64{x[0], x[1]}
	default:
		return nil
	}
	if len(pair) != 2 {
		return nil
	}
	lat, ok1 := parseNumber(pair[0])
	lng, ok2 := parseNumber(pair[1])
	if !ok1 || !ok2 {
		return nil
	}
	return &[2]float64{lat, lng}
}
