package utils

// ToStringSlice converts a loosely typed list into strings. The boolean is
// false when any element is not a string.
func ToStringSlice(slice []any) ([]string, bool) {
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		stringSlice = append(stringSlice, s)
	}
	return stringSlice, true
}
