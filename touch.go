package greenzone

// touch отметка обращения к кадру. Слепок лежащий во вторичном хранилище
// поднимается в память, а взамен вытесняется давнее всех использованный.
func (c *Cache) touch(frame int) error {
	if frame == 0 && c.anchored() {
		return nil
	}

	r, ok := c.current.get(frame)
	if !ok {
		return nil
	}

	present := c.accessed.Touch(frame)

	if r.isDemoted() {
		// Обмен безусловный, даже если память не заполнена.
		other, ok := c.accessed.Oldest(func(f int) bool {
			o, ok := c.current.get(f)
			return ok && f != frame && !o.isDemoted()
		})
		if ok {
			if err := c.demoteFrame(other); err != nil {
				return err
			}
		}

		if err := c.promoteRecord(frame, r); err != nil {
			return err
		}
	}

	if !present && c.expected > 0 && uint64(c.accessed.Len()) > c.mem/c.expected {
		c.accessed.DropOldest()
	}

	return nil
}
