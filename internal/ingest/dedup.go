package ingest

import (
	"fmt"

	"github.com/ytget/img2pdf/internal/model"
)

// Deduplicate returns the candidates whose key is not present in existing,
// preserving candidate order. Repeated candidates collapse to their first occurrence.
func Deduplicate[K comparable](candidates, existing []K) []K {
	seen := make(map[K]struct{}, len(existing)+len(candidates))
	for _, k := range existing {
		seen[k] = struct{}{}
	}

	out := make([]K, 0, len(candidates))
	for _, k := range candidates {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// DeduplicateBy is Deduplicate for composite records, keyed by key.
func DeduplicateBy[T any, K comparable](candidates, existing []T, key func(T) K) ([]T, error) {
	if key == nil {
		return nil, fmt.Errorf("deduplicate records without key extractor: %w", model.ErrInvalidArgument)
	}

	seen := make(map[K]struct{}, len(existing)+len(candidates))
	for _, v := range existing {
		seen[key(v)] = struct{}{}
	}

	out := make([]T, 0, len(candidates))
	for _, v := range candidates {
		k := key(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
