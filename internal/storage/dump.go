package storage

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// ParseDump parses browser local storage dump: a json object where values are either json documents
// or strings holding json documents. Unknown keys are skipped.
func ParseDump(b []byte) (map[string][]byte, error) {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dump: %w", err)
	}

	out := make(map[string][]byte, len(raw))

	for k, v := range raw {
		if !lo.Contains(Keys, k) {
			log.WithField("key", k).Warn("skip unknown key")
			continue
		}

		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			v = jsoniter.RawMessage(s)
		}

		if !json.Valid(v) {
			return nil, fmt.Errorf("invalid json in %s", k)
		}

		out[k] = v
	}

	return out, nil
}

// Restore writes slots into kv in a single transaction.
func Restore(ctx context.Context, kv KV, slots map[string][]byte) error {
	return kv.InTx(ctx, func(kv KV) error {
		for k, v := range slots {
			if err := kv.Set(ctx, k, v); err != nil {
				return fmt.Errorf("failed to set %s: %w", k, err)
			}

			log.WithField("key", k).WithField("size", len(v)).Info("slot restored")
		}

		return nil
	})
}
