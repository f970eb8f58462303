package riot

import (
	"fmt"
	"strings"
)

// Region is a routing region. Account and match-v5 endpoints are served
// from regional hosts, not platform hosts.
type Region string

const (
	Americas Region = "americas"
	Asia     Region = "asia"
	Europe   Region = "europe"
	SEA      Region = "sea"
)

// Regions lists every routing region we know a host for
var Regions = []Region{Americas, Asia, Europe, SEA}

// platformRegions maps platform ids (euw1, na1, ...) to their routing region
var platformRegions = map[string]Region{
	"na1":  Americas,
	"br1":  Americas,
	"la1":  Americas,
	"la2":  Americas,
	"oc1":  Americas,
	"kr":   Asia,
	"jp1":  Asia,
	"euw1": Europe,
	"eun1": Europe,
	"tr1":  Europe,
	"ru":   Europe,
	"me1":  Europe,
	"sg2":  SEA,
	"ph2":  SEA,
	"th2":  SEA,
	"vn2":  SEA,
	"tw2":  SEA,
}

// ParseRegion accepts either a routing region ("europe") or a platform id
// ("euw1", "NA1") and returns the routing region that serves it.
func ParseRegion(s string) (Region, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return "", fmt.Errorf("%w: empty region", ErrUnknownRegion)
	}

	for _, region := range Regions {
		if value == string(region) {
			return region, nil
		}
	}

	if region, ok := platformRegions[value]; ok {
		return region, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// Valid reports whether r is a known routing region
func (r Region) Valid() bool {
	for _, region := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	return string(r)
}
