// Package ovsdbcfg holds OvsDbGlobalConfig, the desired-state view of the
// Open_vSwitch table's external_ids/other_config columns (spec §3, §4.8).
package ovsdbcfg

import "gopkg.in/yaml.v3"

// ReservedKey is rejected anywhere a caller tries to set it through this
// section; ovn-bridge-mappings is owned by the OVN integration, not by a
// user's ovs-db section (spec §4.8).
const ReservedKey = "ovn-bridge-mappings"

// Config is { external_ids, other_config }. A missing map means "don't
// touch this column"; a present-but-nil value for a key inside a map means
// "delete this key"; a present, non-nil value means "set this key".
type Config struct {
	ExternalIDs map[string]*string `yaml:"external_ids,omitempty" json:"external_ids,omitempty"`
	OtherConfig map[string]*string `yaml:"other_config,omitempty" json:"other_config,omitempty"`

	// externalIDsSet/otherConfigSet record whether the key was present at
	// all in the user's document, distinguishing "omitted" (preserve) from
	// "present as {}" (purge) — a zero-value Go map can't carry that bit.
	externalIDsSet bool
	otherConfigSet bool
}

// SetExternalIDsPresent marks that the external_ids key was present in the
// source document, even if it decoded to an empty/nil map.
func (c *Config) SetExternalIDsPresent()  { c.externalIDsSet = true }
func (c *Config) SetOtherConfigPresent()  { c.otherConfigSet = true }
func (c Config) ExternalIDsPresent() bool { return c.externalIDsSet }
func (c Config) OtherConfigPresent() bool { return c.otherConfigSet }

// UnmarshalYAML decodes a Config and records which of external_ids/
// other_config were present in the document at all, since a zero-value map
// can't distinguish "key omitted" from "key present as {}".
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch node.Content[i].Value {
			case "external_ids":
				c.externalIDsSet = true
			case "other_config":
				c.otherConfigSet = true
			}
		}
	}
	return nil
}

// HasReservedKey reports whether the user tried to manage ReservedKey
// through either column.
func (c Config) HasReservedKey() bool {
	_, inExternal := c.ExternalIDs[ReservedKey]
	_, inOther := c.OtherConfig[ReservedKey]
	return inExternal || inOther
}
