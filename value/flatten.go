package value

import "strconv"

// Flatten deep-flattens nested objects and arrays into a single object
// whose keys are the paths to each leaf, joined by sep. Array elements
// contribute their decimal index as a path segment. Scalars and nulls are
// returned unchanged.
//
//	{"a": {"b": 1, "c": [2, 3]}}  →  {"a.b": 1, "a.c.0": 2, "a.c.1": 3}
func Flatten(v Value, sep string) Value {
	switch v.kind {
	case KindObject, KindArray:
		out := map[string]Value{}
		flattenInto(out, "", sep, v)
		return Object(out)
	default:
		return v
	}
}

func flattenInto(out map[string]Value, prefix, sep string, v Value) {
	switch v.kind {
	case KindObject:
		if len(v.o) == 0 && prefix != "" {
			out[prefix] = v
			return
		}
		for k, f := range v.o {
			flattenInto(out, joinKey(prefix, sep, k), sep, f)
		}
	case KindArray:
		if len(v.a) == 0 && prefix != "" {
			out[prefix] = v
			return
		}
		for i, item := range v.a {
			flattenInto(out, joinKey(prefix, sep, strconv.Itoa(i)), sep, item)
		}
	default:
		out[prefix] = v
	}
}

func joinKey(prefix, sep, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + sep + key
}

// Merge deep-merges src into dst and returns the result. Object fields
// merge recursively; for any other conflict src wins. Neither input is
// mutated.
func Merge(dst, src Value) Value {
	if dst.kind != KindObject || src.kind != KindObject {
		return src
	}
	out := make(map[string]Value, len(dst.o)+len(src.o))
	for k, f := range dst.o {
		out[k] = f
	}
	for k, f := range src.o {
		if existing, ok := out[k]; ok {
			out[k] = Merge(existing, f)
		} else {
			out[k] = f
		}
	}
	return Object(out)
}
