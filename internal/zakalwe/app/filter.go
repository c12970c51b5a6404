package app

import (
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

// reduceFilter owns the revset fields: the active expression and the
// bounded most-recent-first history. Preset selection is ApplyFilter
// with a canned expression, so it needs no action of its own.
func reduceFilter(s AppState, a Action) (AppState, []Command, bool) {
	switch a := a.(type) {
	case ApplyFilter:
		expr := strings.TrimSpace(a.Expr)
		if expr == "" {
			next, cmds := Reduce(s, ClearFilter{})
			return next, cmds, true
		}
		s.Recent = pushRecent(s.Recent, expr)
		s.Revset = expr
		cmds := []Command{
			s.persistFilters(),
			s.load(expr, s.PageSize, ""),
		}
		return s, cmds, true

	case ClearFilter:
		// Already unfiltered: clearing again changes nothing.
		if s.Revset == "" {
			return s, nil, true
		}
		s.Revset = ""
		cmd := s.load("", s.PageSize, "")
		return s, []Command{cmd}, true
	}
	return s, nil, false
}

// pushRecent de-duplicates, inserts at the front, and truncates, without
// touching the input slice.
func pushRecent(recent []string, expr string) []string {
	out := make([]string, 0, len(recent)+1)
	out = append(out, expr)
	for _, r := range recent {
		if r != expr {
			out = append(out, r)
		}
	}
	if len(out) > MaxRecentFilters {
		out = out[:MaxRecentFilters]
	}
	return out
}

func (s *AppState) persistFilters() PersistFilters {
	seq := s.nextSeq()
	return PersistFilters{meta: meta{seq: seq}, Filters: append([]string(nil), s.Recent...)}
}

// revertFilter implements the auto-revert rule: a filter-syntax failure
// while a filter is active clears the filter and reloads unfiltered, so
// the view can never stay stuck on a filter that errors every reload.
func revertFilter(s AppState, err *ErrorState) (AppState, []Command, bool) {
	if err == nil || s.Revset == "" {
		return s, nil, false
	}
	if err.Kind != recovery.KindFilterSyntax {
		return s, nil, false
	}
	s.Revset = ""
	cmd := s.load("", s.PageSize, "")
	return s, []Command{cmd}, true
}
