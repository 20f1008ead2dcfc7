package navigation

import "strings"

// NormalizeReferer turns an absolute referer into the application-relative
// path used as a Page key. Referers outside baseURL, or any referer when
// baseURL is unset, are treated as absent and yield "".
func NormalizeReferer(referer, baseURL string) string {
	referer = strings.TrimSpace(referer)
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if referer == "" || baseURL == "" {
		return ""
	}
	if len(referer) < len(baseURL) || !strings.EqualFold(referer[:len(baseURL)], baseURL) {
		return ""
	}
	rest := referer[len(baseURL):]
	switch {
	case rest == "":
		return "/"
	case rest[0] == '/':
		return rest
	case rest[0] == '?' || rest[0] == '#':
		return "/" + rest
	default:
		// Same prefix but a different host, e.g. example.com.evil.
		return ""
	}
}
