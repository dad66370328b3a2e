package utils

// RemoveEmptyStrings returns s without empty elements.
func RemoveEmptyStrings(s []string) []string {
	var out []string
	for _, v := range s {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
