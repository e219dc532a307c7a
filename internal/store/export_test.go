package store

// Suppressing reports whether the next watch event will be treated as the
// store's own write.
func (c *core[T]) Suppressing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.suppress
}
