package postgresosm

import (
	"strconv"
	"strings"
)

func ensureName(name string, category string, osmID int64) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	if category == "" {
		category = "place"
	}
	return strings.ToUpper(category[:1]) + category[1:] + " " + strconv.FormatInt(osmID, 10)
}

// tagValues переводит текстовый запрос в список значений OSM тегов amenity/shop/tourism/leisure
func tagValues(query string) []string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}
	if values, ok := querySynonyms[normalized]; ok {
		return values
	}

	words := strings.Fields(normalized)
	values := make([]string, 0, len(words)+1)
	values = append(values, strings.Join(words, "_"))
	for _, w := range words {
		if syn, ok := querySynonyms[w]; ok {
			values = append(values, syn...)
			continue
		}
		values = append(values, strings.TrimSuffix(w, "s"))
	}
	return dedupe(values)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// likePattern экранирует запрос для ILIKE
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(query)) + "%"
}

func formatAddress(street, houseNumber, city string) string {
	parts := make([]string, 0, 2)
	if street != "" {
		if houseNumber != "" {
			parts = append(parts, street+", "+houseNumber)
		} else {
			parts = append(parts, street)
		}
	}
	if city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}
