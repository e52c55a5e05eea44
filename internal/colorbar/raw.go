package colorbar

// Raw is a single colorbar record as decoded from YAML, before validation.
// It is either a reference (a "reference" key naming another record) or a
// concrete record with "cmap"/"norm"/"cbar" blocks. Both shapes may carry an
// "auxiliary" block of free-form metadata.
type Raw map[string]any

// IsReference reports whether the record aliases another record by name.
func (r Raw) IsReference() bool {
	_, ok := r["reference"]
	return ok
}

// Reference returns the referenced record name, or "" when the record is
// concrete or the reference value is not a string.
func (r Raw) Reference() string {
	s, _ := toString(r["reference"])
	return s
}

// Auxiliary returns the auxiliary metadata block, or nil.
func (r Raw) Auxiliary() map[string]any {
	m, _ := r["auxiliary"].(map[string]any)
	return m
}

// Categories returns the auxiliary category tags attached to the record.
// The "category" entry may be a single string or a list of strings.
func (r Raw) Categories() []string {
	aux := r.Auxiliary()
	if aux == nil {
		return nil
	}
	switch v := aux["category"].(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := toString(item); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a deep copy of the record. The registry hands out clones so
// callers can never mutate registry internals.
func (r Raw) Clone() Raw {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]any(r)).(map[string]any)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []float64:
		return append([]float64(nil), val...)
	case []int:
		return append([]int(nil), val...)
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}

// toFloat coerces the numeric types the YAML decoder produces to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toInt coerces integer values only; floats are rejected deliberately.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toFloatSlice accepts []any of numbers plus the already-normalized slice
// types a canonical record emits.
func toFloatSlice(v any) ([]float64, bool) {
	switch seq := v.(type) {
	case []float64:
		return append([]float64(nil), seq...), true
	case []int:
		out := make([]float64, len(seq))
		for i, n := range seq {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(seq))
		for i, item := range seq {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func toIntSlice(v any) ([]int, bool) {
	switch seq := v.(type) {
	case []int:
		return append([]int(nil), seq...), true
	case []any:
		out := make([]int, len(seq))
		for i, item := range seq {
			n, ok := toInt(item)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func toStringSlice(v any) ([]string, bool) {
	switch seq := v.(type) {
	case []string:
		return append([]string(nil), seq...), true
	case []any:
		out := make([]string, len(seq))
		for i, item := range seq {
			s, ok := toString(item)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
