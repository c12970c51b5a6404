// Package recovery classifies raw failure text from the VCS engine into
// a kind and severity, with advisory suggestions for the user.
package recovery

import "strings"

// Kind is the failure category used by the state machine.
type Kind int

const (
	KindGeneric Kind = iota
	KindFilterSyntax
	KindConflict
	KindImmutable
	KindDirtyWorkingCopy
	KindBookmarkMissing
	KindNetworkRemote
	KindNotARepo
)

// Severity orders how intrusively an error is presented: warnings are
// transient, errors block until dismissed, critical errors additionally
// suggest a full reload.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// Result is the classification of one failure message.
type Result struct {
	Kind        Kind
	Severity    Severity
	Suggestions []string
}

// rule matches when every keyword in all and at least one keyword in any
// occur in the lowercased message. Rules are evaluated in order; the
// first match wins.
type rule struct {
	all      []string
	any      []string
	kind     Kind
	severity Severity
	suggest  []string
}

var rules = []rule{
	{
		any:      []string{"revset", "parse error"},
		kind:     KindFilterSyntax,
		severity: SeverityError,
		suggest:  []string{"Check the revset syntax, or press Esc to clear the filter"},
	},
	{
		all:      []string{"error", "function"},
		kind:     KindFilterSyntax,
		severity: SeverityError,
		suggest:  []string{"Check the revset syntax, or press Esc to clear the filter"},
	},
	{
		all:      []string{"invalid", "expression"},
		kind:     KindFilterSyntax,
		severity: SeverityError,
		suggest:  []string{"Check the revset syntax, or press Esc to clear the filter"},
	},
	{
		any:      []string{"conflict"},
		kind:     KindConflict,
		severity: SeverityError,
		suggest:  []string{"Try running: jj resolve (to open the external merge tool)"},
	},
	{
		any:      []string{"immutable"},
		kind:     KindImmutable,
		severity: SeverityError,
		suggest:  []string{"Try running: jj new (to create a child of the immutable revision)"},
	},
	{
		any:      []string{"dirty working copy", "uncommitted changes"},
		kind:     KindDirtyWorkingCopy,
		severity: SeverityWarning,
		suggest:  []string{"Try running: jj snapshot"},
	},
	{
		any:      []string{"no such bookmark", "bookmark not found"},
		kind:     KindBookmarkMissing,
		severity: SeverityError,
		suggest:  []string{"Check the bookmark name or try: jj bookmark list"},
	},
	{
		any:      []string{"connection", "network", "remote", "could not resolve", "timed out", "authentication"},
		kind:     KindNetworkRemote,
		severity: SeverityWarning,
		suggest:  []string{"Check the remote configuration and network, then retry"},
	},
	{
		any:      []string{"not a git repository", "no jj repo", "there is no jj repo"},
		kind:     KindNotARepo,
		severity: SeverityCritical,
		suggest:  []string{"Ensure you are in a jj/git repository or try: jj git init"},
	},
}

// Classify maps failure text to the first matching rule, defaulting to a
// generic error. Matching is case-insensitive.
func Classify(msg string) Result {
	lower := strings.ToLower(msg)
	for _, r := range rules {
		if matches(lower, r) {
			return Result{Kind: r.kind, Severity: r.severity, Suggestions: append([]string(nil), r.suggest...)}
		}
	}
	return Result{Kind: KindGeneric, Severity: SeverityError}
}

func matches(lower string, r rule) bool {
	for _, kw := range r.all {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	if len(r.any) == 0 {
		return len(r.all) > 0
	}
	for _, kw := range r.any {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindFilterSyntax:
		return "filter syntax"
	case KindConflict:
		return "conflict"
	case KindImmutable:
		return "immutable revision"
	case KindDirtyWorkingCopy:
		return "dirty working copy"
	case KindBookmarkMissing:
		return "missing bookmark"
	case KindNetworkRemote:
		return "network/remote"
	case KindNotARepo:
		return "not a repository"
	default:
		return "error"
	}
}
