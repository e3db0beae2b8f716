package form

import "net/url"

// ParamsFromValues converts submitted url.Values into params for Process.
// Single values become strings; repeated keys keep every value.
func ParamsFromValues(values url.Values) map[string]any {
	params := make(map[string]any, len(values))
	for key, list := range values {
		switch len(list) {
		case 0:
			params[key] = ""
		case 1:
			params[key] = list[0]
		default:
			params[key] = append([]string(nil), list...)
		}
	}
	return params
}
