package actor

// Step applies a reducer to one (state, input) pair and returns the next
// state and effects without executing them. Testing utility for
// reducer-level unit tests.
func Step[S any](state S, input Input, reducer ReducerFunc[S]) (S, []Effect) {
	return reducer(state, input)
}
