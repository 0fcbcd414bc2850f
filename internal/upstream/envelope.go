package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// envelope is the decoded body of a 2xx upstream response. The backend
// answers with either {success, message, data: ...} or a bare JSON
// array; both are tolerated, and anything else decodes to an empty
// envelope rather than an error.
type envelope struct {
	Success bool
	Message string
	Data    any
	Fields  map[string]any
	Bare    []any
}

func parseEnvelope(body []byte) *envelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &envelope{}
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return &envelope{}
	}

	switch t := v.(type) {
	case []any:
		return &envelope{Bare: t}
	case map[string]any:
		env := &envelope{Fields: t}
		env.Success, _ = t["success"].(bool)
		env.Message, _ = t["message"].(string)
		env.Data = t["data"]
		return env
	default:
		return &envelope{}
	}
}

// absent reports whether the response carried no usable body at all.
// Create/update calls treat that as a hard error; everything else
// degrades to empty defaults.
func (e *envelope) absent() bool {
	return e == nil || (e.Fields == nil && e.Bare == nil)
}

// Collection is the normalized shape of every list response.
type Collection[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// collect normalizes the three list shapes the upstream produces: a
// bare array, {data: {<key>: [...], total}}, or {data: [...]}. A
// malformed payload yields an empty collection, never an error.
func collect[T any](env *envelope, key string) Collection[T] {
	col := Collection[T]{Items: []T{}}
	if env == nil {
		return col
	}

	if env.Bare != nil {
		col.Items = decodeItems[T](env.Bare)
		return col
	}

	data, ok := env.Data.(map[string]any)
	if !ok {
		if list, ok := env.Data.([]any); ok {
			col.Items = decodeItems[T](list)
		}
		return col
	}

	list, ok := data[key].([]any)
	if !ok {
		return col
	}
	col.Items = decodeItems[T](list)
	col.Total = weakInt(data["total"])
	return col
}

// entity extracts a single object from the envelope's data, looking
// first at a named wrapper key and then at data itself. Returns nil
// when the shape does not fit.
func entity[T any](env *envelope, key string) *T {
	if env == nil || env.Data == nil {
		return nil
	}

	src := env.Data
	if m, ok := env.Data.(map[string]any); ok {
		if wrapped, ok := m[key]; ok && wrapped != nil {
			src = wrapped
		}
	}
	if _, ok := src.(map[string]any); !ok {
		return nil
	}

	var out T
	if err := decodeValue(src, &out); err != nil {
		return nil
	}
	return &out
}

func decodeItems[T any](list []any) []T {
	items := make([]T, 0, len(list))
	for _, raw := range list {
		var item T
		if err := decodeValue(raw, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

func decodeValue[T any](src any, out *T) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

func weakInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
