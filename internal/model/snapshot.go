package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"time"
)

// Snapshot is a point-in-time copy of the whole dataset.
// On import a nil Items or Categories means "leave that collection alone".
type Snapshot struct {
	Items      []Item    `json:"items"`
	Categories []string  `json:"categories"`
	ExportedAt time.Time `json:"exportedAt,omitzero"`
}

// UnmarshalLenient decodes b into v, tolerating values of the wrong JSON type.
// encoding/json skips such fields and keeps going, so the partially filled v is
// usable; partial reports that this happened. A timestamp that does not parse
// would abort the whole decode instead, so such values are repaired or dropped
// and the document decoded again. Syntax errors are returned as-is.
func UnmarshalLenient(b []byte, v any) (partial bool, err error) {
	err = json.Unmarshal(b, v)
	if err == nil {
		return false, nil
	}
	if isTypeError(err) {
		return true, nil
	}
	if !json.Valid(b) {
		return false, err
	}

	tree, ok := scrubbedTree(b)
	if !ok {
		return false, err
	}
	clean, merr := json.Marshal(tree)
	if merr != nil {
		return false, err
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
	if err := json.Unmarshal(clean, v); err != nil && !isTypeError(err) {
		return false, err
	}
	return true, nil
}

func isTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

var timestampKeys = map[string]bool{"createdAt": true, "updatedAt": true, "exportedAt": true}

// scrubbedTree decodes b generically and fixes every timestamp field that
// time.Time would reject. ok is false when nothing needed fixing.
func scrubbedTree(b []byte) (tree any, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, false
	}
	return tree, scrub(tree)
}

func scrub(node any) (changed bool) {
	switch n := node.(type) {
	case map[string]any:
		for k, val := range n {
			if !timestampKeys[k] {
				changed = scrub(val) || changed
				continue
			}
			if fixed, keep, ok := fixTimestamp(val); !ok {
				changed = true
				if keep {
					n[k] = fixed
				} else {
					delete(n, k)
				}
			}
		}
	case []any:
		for _, val := range n {
			changed = scrub(val) || changed
		}
	}
	return changed
}

// fixTimestamp reports ok when val already decodes into time.Time. Otherwise a
// bare YYYY-MM-DD date is rewritten to midnight UTC (keep) and anything else
// is dropped.
func fixTimestamp(val any) (fixed string, keep, ok bool) {
	if val == nil {
		return "", false, true
	}
	s, isString := val.(string)
	if !isString {
		return "", false, false
	}
	var t time.Time
	if err := t.UnmarshalText([]byte(s)); err == nil {
		return "", false, true
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d.UTC().Format(time.RFC3339), true, false
	}
	return "", false, false
}
