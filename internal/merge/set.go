package merge

// orderedSet keeps insertion order so merge assembles tabs in the same
// sequence the user picked them.
type orderedSet struct {
	ids   []int
	index map[int]int
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[int]int)}
}

func (s *orderedSet) has(id int) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) add(id int) bool {
	if s.has(id) {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

func (s *orderedSet) remove(id int) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
	return true
}

func (s *orderedSet) values() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *orderedSet) len() int { return len(s.ids) }

func (s *orderedSet) clear() {
	s.ids = nil
	s.index = make(map[int]int)
}

// adopt replaces the set contents with the other set's ids, preserving
// their order, and empties the other set.
func (s *orderedSet) adopt(other *orderedSet) {
	s.clear()
	for _, id := range other.ids {
		s.add(id)
	}
	other.clear()
}
