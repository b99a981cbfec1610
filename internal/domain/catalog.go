package domain

import "strings"

// ServiceEntry is one priced zone of a service category.
// (Category, Zone) is the key; the first occurrence wins on duplicates.
type ServiceEntry struct {
	Category        string
	Zone            string
	DurationMinutes int
	Price           int
}

// Key returns the catalog key of the entry
func (e ServiceEntry) Key() CatalogKey {
	return CatalogKey{Category: e.Category, Zone: e.Zone}
}

// CatalogKey identifies a catalog row
type CatalogKey struct {
	Category string
	Zone     string
}

// NormalizeCatalog trims keys, drops rows with an empty category or zone
// and keeps only the first occurrence of each key
func NormalizeCatalog(entries []ServiceEntry) []ServiceEntry {
	seen := make(map[CatalogKey]struct{}, len(entries))
	result := make([]ServiceEntry, 0, len(entries))

	for _, e := range entries {
		e.Category = strings.TrimSpace(e.Category)
		e.Zone = strings.TrimSpace(e.Zone)
		if e.Category == "" || e.Zone == "" {
			continue
		}
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		result = append(result, e)
	}

	return result
}

// DefaultCatalog is the seed price list
func DefaultCatalog() []ServiceEntry {
	return []ServiceEntry{
		{"Láser", "Axilas", 15, 8000},
		{"Láser", "Medias piernas", 25, 16000},
		{"Láser", "Piernas completas", 40, 25000},
		{"Láser", "Brazos", 30, 18000},
		{"Láser", "Medio brazo", 20, 12000},
		{"Láser", "Cavado", 20, 12000},
		{"Láser", "Tiro de cola", 15, 10000},
		{"Láser", "Rostro completo", 25, 15000},
		{"Láser", "Cara", 15, 9000},
		{"Descartable", "Axilas", 20, 6000},
		{"Descartable", "Medias piernas", 30, 12000},
		{"Descartable", "Piernas completas", 45, 20000},
		{"Descartable", "Brazos", 35, 15000},
		{"Descartable", "Medio brazo", 25, 10000},
		{"Descartable", "Cavado", 25, 10000},
		{"Descartable", "Tiro de cola", 20, 8000},
		{"Descartable", "Rostro completo", 30, 12000},
		{"Descartable", "Cara", 20, 8000},
	}
}
