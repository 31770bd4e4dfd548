package models

// transitions maps a state to the states it may move to next.
type transitions[S comparable] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (t transitions[S]) known(s S) bool {
	_, ok := t[s]
	return ok
}
