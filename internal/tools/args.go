package tools

// Argument accessors tolerate the types JSON decoding actually produces:
// numbers as float64, arrays as []any. Missing or mistyped values yield
// zero values and fail downstream validation with a proper message.

func (a Args) num(key string) int64 {
	switch v := a[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (a Args) str(key string) string {
	s, _ := a[key].(string)
	return s
}

func (a Args) strs(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
