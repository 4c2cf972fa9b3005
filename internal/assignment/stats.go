package assignment

import (
	"sort"

	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

// CountByItem is one bucket of a dashboard aggregation.
type CountByItem struct {
	Item  string
	Count int
}

// CountHardwareByType groups the hardware inventory by type. Blank types
// fall into an "N/A" bucket. Buckets come back sorted by item name so the
// dashboard renders stably.
func CountHardwareByType(items []models.HardwareItem) []CountByItem {
	counts := map[string]int{}
	for _, it := range items {
		counts[orNA(it.Type)]++
	}
	return sortedCounts(counts)
}

// CountEmployeesByDepartment groups employees by department.
func CountEmployeesByDepartment(items []models.Employee) []CountByItem {
	counts := map[string]int{}
	for _, it := range items {
		counts[orNA(it.Department)]++
	}
	return sortedCounts(counts)
}

// CountLicensesBySoftware groups licenses by software name.
func CountLicensesBySoftware(items []models.LicenseItem) []CountByItem {
	counts := map[string]int{}
	for _, it := range items {
		counts[orNA(it.SoftwareName)]++
	}
	return sortedCounts(counts)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func sortedCounts(counts map[string]int) []CountByItem {
	out := make([]CountByItem, 0, len(counts))
	for item, n := range counts {
		out = append(out, CountByItem{Item: item, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}
