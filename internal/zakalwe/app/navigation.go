package app

// reduceNavigation owns the cursor. Navigation is inert outside normal
// mode; moving the cursor refreshes the diff for the newly selected
// revision.
func reduceNavigation(s AppState, a Action) (AppState, []Command, bool) {
	var target int
	switch a := a.(type) {
	case MoveSelection:
		target = s.Selected + a.Delta
	case SelectFirst:
		target = 0
	case SelectLast:
		if s.Repo == nil {
			return s, nil, true
		}
		target = len(s.Repo.Revisions) - 1
	default:
		return s, nil, false
	}

	if s.Mode != ModeNormal {
		return s, nil, true
	}
	if s.Repo == nil || len(s.Repo.Revisions) == 0 {
		s.Selected = -1
		return s, nil, true
	}

	next := clampIndex(target, len(s.Repo.Revisions))
	if next == s.Selected {
		return s, nil, true
	}
	s.Selected = next

	var cmds []Command
	if sel := s.SelectedRevision(); sel != nil && sel.ID != s.DiffFor {
		cmds = append(cmds, s.loadDiff(sel.ID))
	}
	return s, cmds, true
}
