// Package netroute holds Route and RouteRule, the ordered, keyed entities
// that the reconciler folds onto the interface that owns them (spec §4.5
// "Route folding" / "Rule folding").
package netroute

import "strconv"

// Route is a single route entry. Entries are keyed by (TableID, Destination,
// NextHop, Metric, Source, RouteType) for entry-set diffing — spec §3.
type Route struct {
	TableID          int    `yaml:"table-id,omitempty" json:"table-id,omitempty"`
	Destination      string `yaml:"destination" json:"destination"`
	NextHopInterface string `yaml:"next-hop-interface,omitempty" json:"next-hop-interface,omitempty"`
	NextHopAddress   string `yaml:"next-hop-address,omitempty" json:"next-hop-address,omitempty"`
	Metric           int    `yaml:"metric,omitempty" json:"metric,omitempty"`
	Source           string `yaml:"source,omitempty" json:"source,omitempty"`
	RouteType        string `yaml:"route-type,omitempty" json:"route-type,omitempty"`
}

// undefinedNextHop reports the two spellings of "no next-hop" the wire
// format allows (spec §3: "Empty next-hops encoded as 0.0.0.0/:: are
// treated as undefined").
func undefinedNextHop(addr string) bool {
	return addr == "" || addr == "0.0.0.0" || addr == "::"
}

// isIPv6Destination reports whether dest is an IPv6 CIDR, going by the
// presence of a colon — the same test nmstate's wire format relies on since
// Route carries no explicit family field.
func isIPv6Destination(dest string) bool {
	for i := 0; i < len(dest); i++ {
		if dest[i] == ':' {
			return true
		}
	}
	return false
}

// normalizedMetric coerces an IPv6 route's metric of 0 — "unset, use the
// default" — to the nmstate/kernel default of 1024, so a desired route that
// omits metric compares equal to the same route read back from the kernel
// (spec §3/§4.7; without this, DiffByInterface sees different keys for the
// same route and idempotence, spec §8 property 1, breaks).
func (r Route) normalizedMetric() int {
	if r.Metric == 0 && isIPv6Destination(r.Destination) {
		return 1024
	}
	return r.Metric
}

// Key returns the composite key routes are diffed and deduplicated by.
func (r Route) Key() string {
	nh := r.NextHopAddress
	if undefinedNextHop(nh) {
		nh = ""
	}
	return joinKey(strconv.Itoa(r.TableID), r.Destination, nh, strconv.Itoa(r.normalizedMetric()), r.Source, r.RouteType)
}

// RouteRule is a policy routing rule, keyed by TableID for the Rule-folding
// step in spec §4.5.
type RouteRule struct {
	TableID  int    `yaml:"route-table" json:"route-table"`
	Priority int    `yaml:"priority,omitempty" json:"priority,omitempty"`
	From     string `yaml:"ip-from,omitempty" json:"ip-from,omitempty"`
	To       string `yaml:"ip-to,omitempty" json:"ip-to,omitempty"`
	Family   string `yaml:"family,omitempty" json:"family,omitempty"`
}

// Set is the {config, running} pair nmstate's wire format uses for routes;
// route-rules use RuleSet.
type Set struct {
	Config  []Route `yaml:"config,omitempty" json:"config,omitempty"`
	Running []Route `yaml:"running,omitempty" json:"running,omitempty"`
}

// RuleSet is the route-rules {config: [...]} wrapper.
type RuleSet struct {
	Config []RouteRule `yaml:"config,omitempty" json:"config,omitempty"`
}

func joinKey(parts ...string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "\x00" + p
	}
	return out
}

// DiffByInterface computes the set of (interface, []Route) pairs that
// changed between desire and current, keyed by Route.Key() per spec §4.5.
// Routes are expected to already carry their owning interface name in
// NextHopInterface.
func DiffByInterface(desire, current []Route) map[string][]Route {
	changedIfaces := map[string]bool{}
	desireByIface := groupByIface(desire)
	currentByIface := groupByIface(current)

	for ifaceName, routes := range desireByIface {
		if !sameRouteSet(routes, currentByIface[ifaceName]) {
			changedIfaces[ifaceName] = true
		}
	}
	for ifaceName, routes := range currentByIface {
		if _, ok := desireByIface[ifaceName]; !ok && len(routes) > 0 {
			changedIfaces[ifaceName] = true
		}
	}

	out := make(map[string][]Route, len(changedIfaces))
	for ifaceName := range changedIfaces {
		out[ifaceName] = desireByIface[ifaceName]
	}
	return out
}

func groupByIface(routes []Route) map[string][]Route {
	out := map[string][]Route{}
	for _, r := range routes {
		if r.NextHopInterface == "" {
			continue
		}
		out[r.NextHopInterface] = append(out[r.NextHopInterface], r)
	}
	return out
}

func sameRouteSet(a, b []Route) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[string]int{}
	for _, r := range a {
		seen[r.Key()]++
	}
	for _, r := range b {
		k := r.Key()
		if seen[k] == 0 {
			return false
		}
		seen[k]--
	}
	return true
}
