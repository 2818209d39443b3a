package game

// CharacterSlots hands out the four cosmetic skin indices. It is owned by
// the arena and only touched from its goroutine.
type CharacterSlots struct {
	assigned map[int]bool
	next     int
}

func NewCharacterSlots() *CharacterSlots {
	return &CharacterSlots{assigned: make(map[int]bool), next: 1}
}

// Assign returns the lowest free slot in 1..4. When all four are taken it
// recycles round-robin, which can hand out a slot another live player
// still holds; two players then share a skin. That is the accepted
// behavior with more than four concurrent players, not a bug.
func (c *CharacterSlots) Assign() int {
	for i := 1; i <= CharacterSlotCount; i++ {
		if !c.assigned[i] {
			c.assigned[i] = true
			return i
		}
	}
	slot := ((c.next - 1) % CharacterSlotCount) + 1
	c.next++
	return slot
}

// Release frees a slot. Releasing an already-free slot is a no-op.
func (c *CharacterSlots) Release(slot int) {
	delete(c.assigned, slot)
}

// Free reports whether a slot is currently unassigned.
func (c *CharacterSlots) Free(slot int) bool {
	return !c.assigned[slot]
}

// Reset frees every slot and restarts the recycling counter.
func (c *CharacterSlots) Reset() {
	c.assigned = make(map[int]bool)
	c.next = 1
}
