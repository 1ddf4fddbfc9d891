package upstream

import (
	"encoding/json"
	"fmt"
)

// Page is a normalized slice of an upstream collection. The API answers
// with either a keyed pagination envelope or a bare array; both resolve to
// this shape once, at the boundary.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

// decodePage resolves the response-shape union for a collection keyed by
// collectionKey inside the data object:
//
//	{"data": {"<key>": [...], "totalPages": n, "total": n}}
//	{"data": [...]}
func decodePage[T any](body []byte, collectionKey string) (Page[T], error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Page[T]{}, fmt.Errorf("decode upstream envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return Page[T]{}, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &keyed); err == nil {
		if keyed == nil {
			// data was JSON null
			return Page[T]{}, nil
		}
		raw, ok := keyed[collectionKey]
		if !ok {
			return Page[T]{}, fmt.Errorf("upstream data object missing %q", collectionKey)
		}
		var page Page[T]
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return Page[T]{}, fmt.Errorf("decode %q collection: %w", collectionKey, err)
		}
		decodeInt(keyed, "page", &page.Page)
		decodeInt(keyed, "totalPages", &page.TotalPages)
		decodeInt(keyed, "total", &page.Total)
		if page.Total == 0 {
			page.Total = len(page.Items)
		}
		return page, nil
	}

	var items []T
	if err := json.Unmarshal(envelope.Data, &items); err != nil {
		return Page[T]{}, fmt.Errorf("decode bare collection: %w", err)
	}
	return Page[T]{Items: items, Page: 1, TotalPages: 1, Total: len(items)}, nil
}

func decodeInt(keyed map[string]json.RawMessage, key string, dst *int) {
	raw, ok := keyed[key]
	if !ok {
		return
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		*dst = n
	}
}
