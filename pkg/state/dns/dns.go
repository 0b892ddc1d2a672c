// Package dns holds DnsState, the resolver configuration section of
// NetworkState (spec §3). Per-interface DNS ownership — which interface's
// profile the resolver configuration is attached to — is bookkept on
// iface.BaseInterface and resolved by pkg/reconcile's DNS-folding step (spec
// §4.5), since it turns on route ownership, not anything this package knows.
package dns

import "gopkg.in/yaml.v3"

// Config is the user-supplied resolver configuration. IsPurge, when true,
// takes precedence over any other field supplied alongside it — an explicit
// purge always wins, per SPEC_FULL.md §4's DNS purge-vs-omit supplement.
type Config struct {
	Servers []string `yaml:"server,omitempty" json:"server,omitempty"`
	Search  []string `yaml:"search,omitempty" json:"search,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	IsPurge bool      `yaml:"-" json:"-"`
}

// UnmarshalYAML decodes a resolver config, treating an explicitly present
// but field-empty mapping (`config: {}`) as a purge request rather than a
// no-op — a caller who wants to clear every resolver setting writes an
// empty map, distinct from omitting the key entirely.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	if node.Kind == yaml.MappingNode && len(node.Content) == 0 {
		c.IsPurge = true
	}
	return nil
}

// State is the top-level dns-resolver section. Config is nil when the user
// did not supply the key at all (distinct from an empty, purging Config).
type State struct {
	Config *Config `yaml:"config,omitempty" json:"config,omitempty"`
}

// Merge folds current DNS settings into desired ones for fields the user
// left unset, honoring the IsPurge precedence rule. Returns true if the
// effective DNS state differs from current (spec §4.5: "if unchanged, skip").
func Merge(desire, current *State) (*State, bool) {
	if desire == nil || desire.Config == nil {
		return current, false
	}
	if desire.Config.IsPurge {
		empty := &State{Config: &Config{}}
		return empty, !isEmpty(current)
	}

	merged := &Config{
		Servers: desire.Config.Servers,
		Search:  desire.Config.Search,
		Options: desire.Config.Options,
	}
	if merged.Servers == nil && current != nil && current.Config != nil {
		merged.Servers = current.Config.Servers
	}
	if merged.Search == nil && current != nil && current.Config != nil {
		merged.Search = current.Config.Search
	}
	if merged.Options == nil && current != nil && current.Config != nil {
		merged.Options = current.Config.Options
	}

	result := &State{Config: merged}
	changed := current == nil || current.Config == nil ||
		!equalStrings(merged.Servers, current.Config.Servers) ||
		!equalStrings(merged.Search, current.Config.Search) ||
		!equalStrings(merged.Options, current.Config.Options)
	return result, changed
}

func isEmpty(s *State) bool {
	if s == nil || s.Config == nil {
		return true
	}
	return len(s.Config.Servers) == 0 && len(s.Config.Search) == 0 && len(s.Config.Options) == 0
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
