package value

import "strconv"

// Lookup evaluates a dotted, indexed path against v and returns the value
// it addresses. Paths look like "user.tags[2].name": dots descend into
// object fields, bracketed integers index into arrays. The empty path
// addresses v itself. The second result is false when any step does not
// resolve.
func Lookup(v Value, path string) (Value, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for len(path) > 0 {
		switch path[0] {
		case '.':
			path = path[1:]
			if path == "" {
				return Value{}, false
			}
		case '[':
			end := 1
			for end < len(path) && path[end] != ']' {
				end++
			}
			if end == len(path) {
				return Value{}, false
			}
			idx, err := strconv.Atoi(path[1:end])
			if err != nil {
				return Value{}, false
			}
			item, ok := cur.Index(idx)
			if !ok {
				return Value{}, false
			}
			cur = item
			path = path[end+1:]
		default:
			end := 0
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			field, ok := cur.Field(path[:end])
			if !ok {
				return Value{}, false
			}
			cur = field
			path = path[end:]
		}
	}
	return cur, true
}
