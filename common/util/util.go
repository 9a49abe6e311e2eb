package util

// Filter returns the values for which keep returns true, in order.
// The result never shares memory with arr.
func Filter[K any](arr []K, keep func(K) bool) []K {
	result := make([]K, 0, len(arr))
	for _, value := range arr {
		if keep(value) {
			result = append(result, value)
		}
	}
	return result
}

func IndexOf[K any](arr []K, match func(K) bool) int {
	for i, value := range arr {
		if match(value) {
			return i
		}
	}
	return -1
}

func Copy[K any](arr []K) []K {
	result := make([]K, len(arr))
	copy(result, arr)
	return result
}
