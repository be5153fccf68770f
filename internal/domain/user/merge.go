package user

// Merge deep-merges src into a copy of dst and returns the result.
// Nested objects are merged recursively; arrays and leaf values from src replace
// whatever dst held at the same key. Neither input is mutated.
func Merge(dst, src Record) Record {
	out := Clone(dst)
	if out == nil {
		out = Record{}
	}
	for k, v := range src {
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func mergeValue(dst, src any) any {
	srcMap, srcIsMap := asMap(src)
	dstMap, dstIsMap := asMap(dst)
	if !srcIsMap || !dstIsMap {
		return cloneValue(src)
	}
	return map[string]any(Merge(dstMap, srcMap))
}

func asMap(v any) (Record, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Record:
		return t, true
	}
	return nil, false
}
