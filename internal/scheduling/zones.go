package scheduling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrUnknownGroup возвращается при выборе в группе, которая не предлагается для категории
	ErrUnknownGroup = errors.New("unknown zone group")

	// ErrNotGroupMember возвращается, если выбранная зона не входит в свою группу
	ErrNotGroupMember = errors.New("zone is not a member of the group")

	// ErrZoneNotOffered возвращается, если дополнительная зона не предлагается отдельно
	ErrZoneNotOffered = errors.New("zone is not offered")

	// ErrExclusiveZones возвращается, если выбрано несколько зон одной группы
	ErrExclusiveZones = errors.New("zones of the same group are mutually exclusive")
)

// ZoneGroup набор взаимоисключающих вариантов одной части тела
type ZoneGroup struct {
	Name    string
	Members []string
}

// ExclusiveGroups группы, в которых можно выбрать не более одной зоны
var ExclusiveGroups = []ZoneGroup{
	{Name: "Piernas", Members: []string{"Medias piernas", "Piernas completas"}},
	{Name: "Brazos", Members: []string{"Brazos", "Medio brazo"}},
	{Name: "Rostro", Members: []string{"Rostro completo", "Cara"}},
}

// PreferredCategories категории, которые показываются первыми
var PreferredCategories = []string{"Descartable", "Láser"}

// ZoneOptions варианты выбора зон для одной категории
type ZoneOptions struct {
	Category string
	Groups   []ZoneGroup // только группы, у которых в каталоге есть хотя бы два варианта
	Loose    []string    // остальные зоны, можно выбирать несколько
}

// OrderCategories возвращает категории каталога: сначала предпочтительные, затем остальные в порядке каталога
func OrderCategories(catalog []domain.ServiceEntry) []string {
	present := make(map[string]struct{})
	inOrder := make([]string, 0)
	for _, e := range catalog {
		if e.Category == "" {
			continue
		}
		if _, ok := present[e.Category]; ok {
			continue
		}
		present[e.Category] = struct{}{}
		inOrder = append(inOrder, e.Category)
	}

	result := make([]string, 0, len(inOrder))
	for _, c := range PreferredCategories {
		if _, ok := present[c]; ok {
			result = append(result, c)
		}
	}
	for _, c := range inOrder {
		if !contains(PreferredCategories, c) {
			result = append(result, c)
		}
	}
	return result
}

// BuildZoneOptions раскладывает зоны категории на исключающие группы и свободные зоны.
// Зона группы, оставшаяся без пары, предлагается как свободная.
func BuildZoneOptions(catalog []domain.ServiceEntry, category string) ZoneOptions {
	zones := make([]string, 0)
	for _, e := range catalog {
		if e.Category == category && e.Zone != "" && !contains(zones, e.Zone) {
			zones = append(zones, e.Zone)
		}
	}

	opts := ZoneOptions{Category: category, Groups: []ZoneGroup{}, Loose: []string{}}
	grouped := make(map[string]struct{})

	for _, g := range ExclusiveGroups {
		present := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			if contains(zones, m) {
				present = append(present, m)
			}
		}
		if len(present) < 2 {
			continue
		}
		opts.Groups = append(opts.Groups, ZoneGroup{Name: g.Name, Members: present})
		for _, m := range present {
			grouped[m] = struct{}{}
		}
	}

	for _, z := range zones {
		if _, ok := grouped[z]; !ok {
			opts.Loose = append(opts.Loose, z)
		}
	}

	return opts
}

// BuildZoneSelection собирает итоговый список зон: сначала выбор в группах (в порядке групп),
// затем дополнительные зоны. Пустой выбор в группе означает "ничего". Повторы удаляются.
func BuildZoneSelection(opts ZoneOptions, groupChoices map[string]string, extras []string) ([]string, error) {
	result := make([]string, 0, len(groupChoices)+len(extras))

	for name, choice := range groupChoices {
		if choice == "" {
			continue
		}
		group, ok := opts.group(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, name)
		}
		if !contains(group.Members, choice) {
			return nil, fmt.Errorf("%w: %s is not in %s", ErrNotGroupMember, choice, name)
		}
	}

	for _, g := range opts.Groups {
		if choice := groupChoices[g.Name]; choice != "" {
			result = append(result, choice)
		}
	}

	for _, z := range extras {
		if !contains(opts.Loose, z) {
			return nil, fmt.Errorf("%w: %s", ErrZoneNotOffered, z)
		}
		if !contains(result, z) {
			result = append(result, z)
		}
	}

	return result, nil
}

// CheckExclusive проверяет, что из каждой группы выбрано не больше одной зоны
func (o ZoneOptions) CheckExclusive(zones []string) error {
	for _, g := range o.Groups {
		picked := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			if contains(zones, m) {
				picked = append(picked, m)
			}
		}
		if len(picked) > 1 {
			return fmt.Errorf("%w: %s: %s", ErrExclusiveZones, g.Name, strings.Join(picked, ", "))
		}
	}
	return nil
}

// CheckExclusiveZones проверяет список зон против групп категории в каталоге
func CheckExclusiveZones(catalog []domain.ServiceEntry, category string, zones []string) error {
	return BuildZoneOptions(catalog, category).CheckExclusive(zones)
}

func (o ZoneOptions) group(name string) (ZoneGroup, bool) {
	for _, g := range o.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return ZoneGroup{}, false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
