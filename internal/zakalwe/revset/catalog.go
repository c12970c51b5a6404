// Package revset carries the static preset filters and the revset
// reference shown in the help overlay. Expressions are evaluated by the
// engine, never parsed here.
package revset

// Preset is one canned filter expression for the picker.
type Preset struct {
	Expr        string
	Description string
}

// Entry is one documented operator or function.
type Entry struct {
	Name        string
	Description string
}

// Category groups reference entries for display.
type Category struct {
	Name    string
	Entries []Entry
}

// Presets returns the canned filters, grouped roughly by scope,
// bookmarks, state, and ancestry.
func Presets() []Preset {
	return []Preset{
		{Expr: "all()", Description: "All visible commits"},
		{Expr: "mine()", Description: "Your authored commits"},
		{Expr: "trunk()", Description: "Default bookmark on remote"},
		{Expr: "mutable()", Description: "Mutable commits"},
		{Expr: "immutable()", Description: "Immutable commits"},
		{Expr: "visible_heads()", Description: "All visible head commits"},
		{Expr: "bookmarks()", Description: "Local bookmark targets"},
		{Expr: "remote_bookmarks()", Description: "Remote bookmark targets"},
		{Expr: "tracked_remote_bookmarks()", Description: "Tracked remote bookmarks"},
		{Expr: "tags()", Description: "Tag targets"},
		{Expr: "conflicts()", Description: "Commits with conflicts"},
		{Expr: "divergent()", Description: "Divergent commits"},
		{Expr: "empty()", Description: "Commits modifying no files"},
		{Expr: "merges()", Description: "Merge commits"},
		{Expr: "signed()", Description: "Cryptographically signed"},
		{Expr: "heads(all())", Description: "Commits with no descendants"},
		{Expr: "roots(all())", Description: "Commits with no ancestors"},
		{Expr: "ancestors(@)", Description: "Ancestors of the working copy"},
		{Expr: "descendants(@)", Description: "Descendants of the working copy"},
		{Expr: "working_copies()", Description: "Working copies across workspaces"},
	}
}

// Reference returns the operator and function catalogue for the revset
// help overlay.
func Reference() []Category {
	return []Category{
		{
			Name: "Operators",
			Entries: []Entry{
				{Name: "x-", Description: "Parents of x"},
				{Name: "x+", Description: "Children of x"},
				{Name: "::x", Description: "Ancestors of x"},
				{Name: "x::", Description: "Descendants of x"},
				{Name: "x::y", Description: "Descendants of x that are ancestors of y"},
				{Name: "x..y", Description: "Ancestors of y not ancestors of x"},
				{Name: "x & y", Description: "Intersection (both)"},
				{Name: "x | y", Description: "Union (either)"},
				{Name: "~x", Description: "Complement (not in x)"},
				{Name: "x ~ y", Description: "Difference (x but not y)"},
			},
		},
		{
			Name: "Scope & Identity",
			Entries: []Entry{
				{Name: "all()", Description: "All visible commits"},
				{Name: "none()", Description: "Empty set"},
				{Name: "root()", Description: "Oldest ancestor of all commits"},
				{Name: "@", Description: "Working copy commit"},
				{Name: "mine()", Description: "Your authored commits"},
				{Name: "trunk()", Description: "Default bookmark on remote"},
				{Name: "mutable()", Description: "Mutable commits"},
				{Name: "immutable()", Description: "Immutable commits"},
				{Name: "working_copies()", Description: "Working copies across workspaces"},
				{Name: "visible_heads()", Description: "All visible head commits"},
			},
		},
		{
			Name: "Bookmarks & Tags",
			Entries: []Entry{
				{Name: "bookmarks([p])", Description: "Local bookmark targets"},
				{Name: "remote_bookmarks()", Description: "Remote bookmark targets"},
				{Name: "tracked_remote_bookmarks()", Description: "Tracked remote bookmarks"},
				{Name: "untracked_remote_bookmarks()", Description: "Untracked remote bookmarks"},
				{Name: "tags([p])", Description: "Tag targets"},
				{Name: "remote_tags()", Description: "Remote tag targets"},
			},
		},
		{
			Name: "Ancestry & DAG",
			Entries: []Entry{
				{Name: "parents(x, [d])", Description: "Parents of x (optional depth)"},
				{Name: "children(x, [d])", Description: "Children of x (optional depth)"},
				{Name: "ancestors(x, [d])", Description: "Ancestors of x"},
				{Name: "descendants(x, [d])", Description: "Descendants of x"},
				{Name: "heads(x)", Description: "Commits with no descendants in x"},
				{Name: "roots(x)", Description: "Commits with no ancestors in x"},
				{Name: "connected(x)", Description: "x::x, filling in gaps"},
				{Name: "reachable(s, d)", Description: "Reachable from s within domain d"},
				{Name: "fork_point(x)", Description: "Common ancestor(s) of x"},
				{Name: "first_parent(x)", Description: "First parent only (for merges)"},
				{Name: "first_ancestors(x)", Description: "Ancestors via first parent only"},
			},
		},
		{
			Name: "Search & Metadata",
			Entries: []Entry{
				{Name: "description(p)", Description: "Match commit description"},
				{Name: "subject(p)", Description: "Match first line of description"},
				{Name: "author(p)", Description: "Match author name or email"},
				{Name: "author_date(p)", Description: "Match author date"},
				{Name: "committer(p)", Description: "Match committer name or email"},
				{Name: "committer_date(p)", Description: "Match committer date"},
				{Name: "files(expr)", Description: "Commits modifying matching paths"},
				{Name: "diff_lines(t, [f])", Description: "Commits with matching diff text"},
			},
		},
		{
			Name: "State & Filters",
			Entries: []Entry{
				{Name: "conflicts()", Description: "Commits with conflicts"},
				{Name: "divergent()", Description: "Divergent commits"},
				{Name: "empty()", Description: "Commits modifying no files"},
				{Name: "merges()", Description: "Merge commits"},
				{Name: "signed()", Description: "Cryptographically signed"},
				{Name: "latest(x, [n])", Description: "Latest n commits by date"},
				{Name: "present(x)", Description: "x, or none() if missing"},
				{Name: "exactly(x, n)", Description: "x if exactly n commits"},
			},
		},
		{
			Name: "String Patterns",
			Entries: []Entry{
				{Name: `exact:"str"`, Description: "Exact string match"},
				{Name: `glob:"pat"`, Description: "Unix-style wildcard (default)"},
				{Name: `regex:"pat"`, Description: "Regular expression match"},
				{Name: `substring:"str"`, Description: "Substring match"},
				{Name: "-i suffix", Description: "Case-insensitive (e.g. glob-i:)"},
			},
		},
		{
			Name: "Date Patterns",
			Entries: []Entry{
				{Name: `after:"date"`, Description: "At or after the given date"},
				{Name: `before:"date"`, Description: "Before the given date"},
				{Name: `"2 days ago"`, Description: "Relative date example"},
				{Name: `"yesterday 5pm"`, Description: "Natural language date"},
			},
		},
	}
}
