package app

// reduceErrors owns the ErrorState slot. Boundary failures arrive here
// already classified; the only action classification triggers on its own
// is the filter auto-revert.
func reduceErrors(s AppState, a Action) (AppState, []Command, bool) {
	switch a := a.(type) {
	case ErrorOccurred:
		err := a.Err
		s.Err = &err
		if next, cmds, reverted := revertFilter(s, &err); reverted {
			return next, cmds, true
		}
		return s, nil, true
	case DismissError:
		s.Err = nil
		return s, nil, true
	}
	return s, nil, false
}
