package detect

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

func hasKey(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

// stringField looks up key in obj. present is false when the key is absent
// or null; ok is false when it is present with a non-string value.
func stringField(obj map[string]any, key string) (s string, present, ok bool) {
	v, exists := obj[key]
	if !exists || v == nil {
		return "", false, true
	}
	s, ok = v.(string)
	return s, true, ok
}

// everyElement reports whether fn holds for each element of arr.
func everyElement(arr []any, fn func(obj map[string]any) bool) bool {
	for _, el := range arr {
		obj, ok := asObject(el)
		if !ok || !fn(obj) {
			return false
		}
	}
	return true
}
