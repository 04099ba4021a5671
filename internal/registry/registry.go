// Package registry holds the static, operator-maintained list of monitored
// storefronts. The list is read-only to the rest of the process.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/can-bmu/restaurant-monitor/internal/models"
)

// locations is the operator-maintained registry. Platform and name are given;
// brand and the test flag are derived from the name at load time.
var locations = []models.Location{
	// Bolt
	{Platform: models.PlatformBolt, Name: "Burgers Militari", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/53203"},
	{Platform: models.PlatformBolt, Name: "Smash Militari", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/157022-smash-gorilla/info"},
	{Platform: models.PlatformBolt, Name: "Burgers Olteniței", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/81061-gorilla's-crazy-burgers-berceni"},
	{Platform: models.PlatformBolt, Name: "Smash Olteniței", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/156512"},
	{Platform: models.PlatformBolt, Name: "Smash Moșilor", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/157033-smash-gorilla"},
	{Platform: models.PlatformBolt, Name: "Burgers Moșilor", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/69192-gorilla's-crazy-burgers-mosilor"},
	{Platform: models.PlatformBolt, Name: "Burgers Pipera", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/122872-gorilla's-crazy-burgers-pipera"},
	{Platform: models.PlatformBolt, Name: "Smash Pipera", URL: "https://food.bolt.eu/en-US/325-bucharest/p/157013-smash-gorilla/?utm_content=menu_header&utm_medium=product&utm_source=share_provider"},
	{Platform: models.PlatformBolt, Name: "Tacos Olteniței", URL: "https://food.bolt.eu/ro-RO/325-bucharest/p/130672-gorilla's-crazy-tacos"},
	// Wolt
	{Platform: models.PlatformWolt, Name: "Burgers Militari", URL: "https://wolt.com/en/rou/bucharest/restaurant/gorillas-crazy-burgers-gorjului-67dc3f47b93a5300e8efd705"},
	{Platform: models.PlatformWolt, Name: "Smash Militari", URL: "https://wolt.com/ro/rou/bucharest/restaurant/smash-gorilla-gorjului-6880a63946c4278a97069f59"},
	{Platform: models.PlatformWolt, Name: "Burgers Olteniței", URL: "https://wolt.com/ro/rou/bucharest/restaurant/gorillas-crazy-burgers-oltenitei-67e189430bd3fc375bb3acc8"},
	{Platform: models.PlatformWolt, Name: "Smash Olteniței", URL: "https://wolt.com/ro/rou/bucharest/restaurant/smash-gorilla-berceni-6880a32754547abea1869cec"},
	{Platform: models.PlatformWolt, Name: "Smash Moșilor", URL: "https://wolt.com/en/rou/bucharest/restaurant/smash-gorilla-mosilor-6880a63946c4278a97069f5a"},
	{Platform: models.PlatformWolt, Name: "Burgers Moșilor", URL: "https://wolt.com/en/rou/bucharest/restaurant/gorillas-crazy-burgers-mosilor-67dc3f47b93a5300e8efd706"},
	{Platform: models.PlatformWolt, Name: "Burgers Pipera", URL: "https://wolt.com/ro/rou/bucharest/restaurant/gorillas-crazy-burgers-pipera-67e189430bd3fc375bb3acc9"},
	{Platform: models.PlatformWolt, Name: "Smash Pipera", URL: "https://wolt.com/en/rou/bucharest/restaurant/smash-gorilla-pipera-6880a32754547abea1869ced"},
	{Platform: models.PlatformWolt, Name: "Tacos Olteniței", URL: "https://wolt.com/en/rou/bucharest/restaurant/gorillas-crazy-tacos-berceni-67db0092e014794baf59070a"},
}

var brandOrder = map[string]int{"Burgers": 1, "Smash": 2, "Tacos": 3}

// locationOrder scores the area part of a location name. Keys cover both
// diacritic and plain spellings.
var locationOrder = map[string]int{
	"militari": 1,
	"olteni":   2,
	"mosilor":  3,
	"moșilor":  3,
	"pipera":   4,
}

// BrandOf derives the brand tag from a location name.
func BrandOf(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "taco"):
		return "Tacos"
	case strings.Contains(n, "smash"):
		return "Smash"
	default:
		return "Burgers"
	}
}

// IsTestEntry reports whether a location name marks a throwaway test target.
func IsTestEntry(name string) bool {
	return strings.Contains(strings.ToLower(name), "test")
}

// Load returns the registered locations with derived fields filled in,
// sorted in display order. It fails if two locations share a URL, since the
// sweep result set is keyed by URL.
func Load() ([]models.Location, error) {
	out := make([]models.Location, len(locations))
	seen := make(map[string]string, len(locations))
	for i, loc := range locations {
		if prev, dup := seen[loc.URL]; dup {
			return nil, fmt.Errorf("registry: %q and %q share URL %s", prev, loc.Name, loc.URL)
		}
		seen[loc.URL] = loc.Name
		loc.Brand = BrandOf(loc.Name)
		loc.Test = IsTestEntry(loc.Name)
		out[i] = loc
	}
	Sort(out)
	return out, nil
}

// Sort orders locations for display: Bolt before Wolt, then brand
// (Burgers, Smash, Tacos), then area, then name; test entries last.
func Sort(items []models.Location) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := sortKey(items[i]), sortKey(items[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return items[i].Name < items[j].Name
	})
}

func sortKey(loc models.Location) [4]int {
	test := 0
	if loc.Test {
		test = 1
	}
	platform := 0
	if loc.Platform != models.PlatformBolt {
		platform = 1
	}
	brand, ok := brandOrder[loc.Brand]
	if !ok {
		brand = 99
	}
	area := 99
	lower := strings.ToLower(loc.Name)
	for k, v := range locationOrder {
		if strings.Contains(lower, k) {
			if v < area {
				area = v
			}
		}
	}
	return [4]int{test, platform, brand, area}
}
