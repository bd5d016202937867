package utils

// FindIndex returns the position of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Counter tallies occurrences of comparable keys.
type Counter[T comparable] struct {
	counts map[T]int
}

func NewCounter[T comparable]() *Counter[T] {
	return &Counter[T]{counts: make(map[T]int)}
}

func (c *Counter[T]) Add(item T) {
	c.counts[item]++
}

func (c *Counter[T]) Get(item T) int {
	return c.counts[item]
}

func (c *Counter[T]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}
