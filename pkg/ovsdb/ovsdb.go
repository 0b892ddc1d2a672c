// Package ovsdb reconciles the small, well-defined slice of the
// Open_vSwitch table's external_ids/other_config columns described in
// spec §4.8: select the current row, then update-to-purge or
// mutate-delete-then-insert to overwrite specific keys, never touching
// ovn-bridge-mappings except to re-inject it when a purge would otherwise
// drop it.
//
// Transport rides github.com/ovn-org/libovsdb's client over a unix-domain
// socket, the library's own line-oriented JSON-RPC framing underneath —
// grounded on pkg/ovndb/transact.go's use of the sibling ovn-org/libovsdb
// client/ovsdb packages for OVN NB/SB, generalized here to the
// Open_vSwitch table instead of OVN's northbound schema.
package ovsdb

import (
	"context"
	"fmt"

	"github.com/ovn-org/libovsdb/client"
	"github.com/ovn-org/libovsdb/ovsdb"

	"github.com/corenetic/netstate/pkg/logging"
	"github.com/corenetic/netstate/pkg/nmerror"
	"github.com/corenetic/netstate/pkg/state/ovsdbcfg"
)

const table = "Open_vSwitch"

// Transactor is the subset of client.Client this package exercises —
// narrowed so tests can supply a fake without dialing a real socket.
type Transactor interface {
	Transact(ctx context.Context, ops ...ovsdb.Operation) ([]ovsdb.OperationResult, error)
}

// Client wraps a Transactor with the global_config reconciliation logic.
type Client struct {
	tx  Transactor
	log *logging.Logger
}

// New returns a Client bound to an already-connected libovsdb Transactor.
func New(tx Transactor, log *logging.Logger) *Client {
	return &Client{tx: tx, log: log}
}

// currentRow is the shape of a select reply against Open_vSwitch.
type currentRow struct {
	ExternalIDs map[string]string `ovsdb:"external_ids"`
	OtherConfig map[string]string `ovsdb:"other_config"`
}

// Reconcile applies desired's external_ids/other_config semantics against
// the live Open_vSwitch row (spec §4.8's rule table), re-injecting
// ovn-bridge-mappings in the same transaction if a purge would have
// dropped it (spec §8 scenario S6).
func (c *Client) Reconcile(ctx context.Context, desired *ovsdbcfg.Config) error {
	if desired == nil {
		return nil
	}
	if desired.HasReservedKey() {
		return nmerror.NewInvalidArgument("%q is managed by the OVN integration and cannot be set via ovs-db", ovsdbcfg.ReservedKey)
	}

	current, err := c.selectRow(ctx)
	if err != nil {
		return err
	}

	var ops []ovsdb.Operation
	ops = append(ops, c.columnOps("external_ids", desired.ExternalIDsPresent(), desired.ExternalIDs, current.ExternalIDs)...)
	ops = append(ops, c.columnOps("other_config", desired.OtherConfigPresent(), desired.OtherConfig, current.OtherConfig)...)

	if len(ops) == 0 {
		c.log.V(1).Info("ovs-db reconcile: no-op, nothing supplied")
		return nil
	}

	ovnMapping, hadOVNMapping := current.ExternalIDs[ovsdbcfg.ReservedKey]
	if desired.ExternalIDsPresent() && len(desired.ExternalIDs) == 0 && hadOVNMapping {
		ops = append(ops, ovsdb.Operation{
			Op:    ovsdb.OperationMutate,
			Table: table,
			Mutations: []ovsdb.Mutation{{
				Column:  "external_ids",
				Mutator: ovsdb.MutateOperationInsert,
				Value:   map[string]string{ovsdbcfg.ReservedKey: ovnMapping},
			}},
		})
	}

	results, err := c.tx.Transact(ctx, ops...)
	if err != nil {
		return nmerror.NewPluginFailure("ovsdb", err)
	}
	for i, r := range results {
		if r.Error != "" {
			return nmerror.NewPluginFailure("ovsdb", fmt.Errorf("operation %d (%s): %s", i, ops[i].Op, r.Error))
		}
	}
	return nil
}

func (c *Client) selectRow(ctx context.Context) (currentRow, error) {
	results, err := c.tx.Transact(ctx, ovsdb.Operation{
		Op:      ovsdb.OperationSelect,
		Table:   table,
		Columns: []string{"external_ids", "other_config"},
	})
	if err != nil {
		return currentRow{}, nmerror.NewPluginFailure("ovsdb", fmt.Errorf("select %s: %w", table, err))
	}
	if len(results) == 0 || len(results[0].Rows) == 0 {
		return currentRow{}, nil
	}
	return rowFromResult(results[0]), nil
}

// rowFromResult decodes the raw select reply's two map columns; libovsdb
// represents OVSDB maps as map[interface{}]interface{} at this layer since
// no generated model is bound to this table.
func rowFromResult(result ovsdb.OperationResult) currentRow {
	row := currentRow{ExternalIDs: map[string]string{}, OtherConfig: map[string]string{}}
	raw := result.Rows[0]
	if ext, ok := raw["external_ids"].(map[string]interface{}); ok {
		for k, v := range ext {
			if s, ok := v.(string); ok {
				row.ExternalIDs[k] = s
			}
		}
	}
	if oc, ok := raw["other_config"].(map[string]interface{}); ok {
		for k, v := range oc {
			if s, ok := v.(string); ok {
				row.OtherConfig[k] = s
			}
		}
	}
	return row
}

// columnOps builds the update/mutate operations for one column per spec
// §4.8's rule table: present-but-empty purges the whole column; a present
// non-empty map deletes any key, then inserts present non-nil keys.
func (c *Client) columnOps(column string, present bool, desired map[string]*string, current map[string]string) []ovsdb.Operation {
	if !present {
		return nil
	}
	if len(desired) == 0 {
		c.log.V(1).Info("purging ovsdb column", "column", column)
		return []ovsdb.Operation{{
			Op:    ovsdb.OperationUpdate,
			Table: table,
			Row:   ovsdb.Row{column: map[string]string{}},
		}}
	}

	var deleteKeys []string
	insert := map[string]string{}
	for key, value := range desired {
		if value == nil {
			deleteKeys = append(deleteKeys, key)
			continue
		}
		insert[key] = *value
	}
	_ = current

	var ops []ovsdb.Operation
	if len(deleteKeys) > 0 {
		ops = append(ops, ovsdb.Operation{
			Op:    ovsdb.OperationMutate,
			Table: table,
			Mutations: []ovsdb.Mutation{{
				Column:  column,
				Mutator: ovsdb.MutateOperationDelete,
				Value:   deleteKeys,
			}},
		})
	}
	if len(insert) > 0 {
		// Delete-before-insert: insert never overwrites an existing key
		// (spec §4.8), so any key being set must also be deleted first.
		overwriteKeys := make([]string, 0, len(insert))
		for k := range insert {
			overwriteKeys = append(overwriteKeys, k)
		}
		ops = append(ops, ovsdb.Operation{
			Op:    ovsdb.OperationMutate,
			Table: table,
			Mutations: []ovsdb.Mutation{{
				Column:  column,
				Mutator: ovsdb.MutateOperationDelete,
				Value:   overwriteKeys,
			}},
		}, ovsdb.Operation{
			Op:    ovsdb.OperationMutate,
			Table: table,
			Mutations: []ovsdb.Mutation{{
				Column:  column,
				Mutator: ovsdb.MutateOperationInsert,
				Value:   insert,
			}},
		})
	}
	return ops
}

// Dial connects to the OVSDB server over a unix-domain socket at path.
func Dial(ctx context.Context, path string) (client.Client, error) {
	c, err := client.NewOVSDBClient(nil, client.WithEndpoint("unix:"+path))
	if err != nil {
		return nil, nmerror.NewPluginFailure("ovsdb", fmt.Errorf("create client: %w", err))
	}
	if err := c.Connect(ctx); err != nil {
		return nil, nmerror.NewPluginFailure("ovsdb", fmt.Errorf("connect to %s: %w", path, err))
	}
	return c, nil
}
