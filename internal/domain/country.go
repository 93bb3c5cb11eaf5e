package domain

// RawCountry is one upstream country record of unknown shape, as decoded
// from JSON.
type RawCountry map[string]any

// CountryRecord is the canonical country shape produced by Normalize. Area
// is nil when unknown, which is distinct from zero.
type CountryRecord struct {
	Name         string      `json:"name"`
	OfficialName string      `json:"officialName"`
	CCA2         string      `json:"cca2"`
	CCA3         string      `json:"cca3"`
	Capital      string      `json:"capital"`
	Region       string      `json:"region"`
	Subregion    string      `json:"subregion"`
	Population   float64     `json:"population"`
	Area         *float64    `json:"area"`
	Flag         string      `json:"flag"`
	Languages    []string    `json:"languages"`
	Currencies   []string    `json:"currencies"`
	Borders      []string    `json:"borders"`
	LatLng       *[2]float64 `json:"latlng"`
}

// SameCountry reports whether a and b identify the same country.
func SameCountry(a, b CountryRecord) bool {
	return a.CCA3 == b.CCA3
}

// Raw renders the record back into the upstream field names, so that
// Normalize(rec.Raw()) reproduces rec.
func (c CountryRecord) Raw() RawCountry {
	raw := RawCountry{
		"name": map[string]any{
			"common":   c.Name,
			"official": c.OfficialName,
		},
		"cca2":       c.CCA2,
		"cca3":       c.CCA3,
		"capital":    []any{c.Capital},
		"region":     c.Region,
		"subregion":  c.Subregion,
		"population": c.Population,
		"languages":  toAnySlice(c.Languages),
		"currencies": toAnySlice(c.Currencies),
		"borders":    toAnySlice(c.Borders),
	}
	if c.Area != nil {
		raw["area"] = *c.Area
	}
	if c.Flag != "" {
		raw["flags"] = map[string]any{"svg": c.Flag}
	}
	if c.LatLng != nil {
		raw["latlng"] = []any{c.LatLng[0], c.LatLng[1]}
	}
	return raw
}

// NeedsRefresh reports whether a stored record is missing data that a fresh
// dataset would fill in.
func (c CountryRecord) NeedsRefresh() bool {
	return c.Population == 0 || c.Flag == "" || c.Region == ""
}

// IndexByCCA3 maps CCA3 codes to records. The first record wins on duplicates.
func IndexByCCA3(records []CountryRecord) map[string]CountryRecord {
	idx := make(map[string]CountryRecord, len(records))
	for _, r := range records {
		if r.CCA3 == "" {
			continue
		}
		if _, ok := idx[r.CCA3]; !ok {
			idx[r.CCA3] = r
		}
	}
	return idx
}

// BorderLink is a neighbour reference resolved for display.
type BorderLink struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BorderLinks resolves the record's border codes to country names, falling
// back to the bare code when the neighbour is not in the index.
func BorderLinks(c CountryRecord, idx map[string]CountryRecord) []BorderLink {
	links := make([]BorderLink, 0, len(c.Borders))
	for _, code := range c.Borders {
		name := code
		if n, ok := idx[code]; ok && n.Name != "" {
			name = n.Name
		}
		links = append(links, BorderLink{Code: code, Name: name})
	}
	return links
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
