package navigation

import "regexp"

var entityRouteRE = regexp.MustCompile(`(?i)^entity\.([0-9a-z_]+)\.canonical$`)

// EntityTypeFromRoute extracts <type> from a canonical entity route name of the
// form "entity.<type>.canonical". Other routes yield "".
func EntityTypeFromRoute(route string) string {
	m := entityRouteRE.FindStringSubmatch(route)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// CanonicalRoute is the inverse of EntityTypeFromRoute.
func CanonicalRoute(entityType string) string {
	return "entity." + entityType + ".canonical"
}
