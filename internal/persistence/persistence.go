// Package persistence stores process-wide named values (such as the
// elections flag) in an external key/value store.
package persistence

import (
	"context"
	"fmt"
	"strconv"
)

// Store is a string key/value store. GetItem reports ok=false for unknown keys.
type Store interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
}

// GetBool reads a boolean item, returning def when the key was never set.
func GetBool(ctx context.Context, s Store, key string, def bool) (bool, error) {
	value, ok, err := s.GetItem(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("item %q is not a boolean: %w", key, err)
	}
	return b, nil
}

func SetBool(ctx context.Context, s Store, key string, value bool) error {
	return s.SetItem(ctx, key, strconv.FormatBool(value))
}
