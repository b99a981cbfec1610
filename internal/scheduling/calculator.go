package scheduling

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// ComputeDuration суммирует длительность выбранных зон категории.
// Зоны рассматриваются как множество, повторы ключа (категория, зона) в каталоге
// учитываются по первому вхождению. Если ничего не совпало, возвращает 0.
func ComputeDuration(catalog []domain.ServiceEntry, category string, zones []string) int {
	total := 0
	for _, e := range matching(catalog, category, zones) {
		total += e.DurationMinutes
	}
	return total
}

// ComputePrice суммирует цену выбранных зон категории по тем же правилам, что и ComputeDuration
func ComputePrice(catalog []domain.ServiceEntry, category string, zones []string) int {
	total := 0
	for _, e := range matching(catalog, category, zones) {
		total += e.Price
	}
	return total
}

func matching(catalog []domain.ServiceEntry, category string, zones []string) []domain.ServiceEntry {
	if len(zones) == 0 {
		return nil
	}

	wanted := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		wanted[z] = struct{}{}
	}

	seen := make(map[domain.CatalogKey]struct{})
	result := make([]domain.ServiceEntry, 0, len(zones))
	for _, e := range catalog {
		if e.Category != category {
			continue
		}
		if _, ok := wanted[e.Zone]; !ok {
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
