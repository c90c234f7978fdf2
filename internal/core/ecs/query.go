package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa Source[A], sb Source[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		sa.each(func(id EntityID, a *A) bool {
			if b, ok := sb.lookup(id); ok {
				fn(id, a, b)
			}
			return true
		})
	} else {
		sb.each(func(id EntityID, b *B) bool {
			if a, ok := sa.lookup(id); ok {
				fn(id, a, b)
			}
			return true
		})
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa Source[A], sb Source[B], sc Source[C], fn func(EntityID, *A, *B, *C)) {
	// Iterate the smallest store
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		sa.each(func(id EntityID, a *A) bool {
			if b, ok := sb.lookup(id); ok {
				if c, ok := sc.lookup(id); ok {
					fn(id, a, b, c)
				}
			}
			return true
		})
	case 1:
		sb.each(func(id EntityID, b *B) bool {
			if a, ok := sa.lookup(id); ok {
				if c, ok := sc.lookup(id); ok {
					fn(id, a, b, c)
				}
			}
			return true
		})
	case 2:
		sc.each(func(id EntityID, c *C) bool {
			if a, ok := sa.lookup(id); ok {
				if b, ok := sb.lookup(id); ok {
					fn(id, a, b, c)
				}
			}
			return true
		})
	}
}
