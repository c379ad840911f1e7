// Package command maps free-form transcripts to configured command
// identifiers.
//
// A command identifier is an opaque key into an externally-owned action
// table; this package never executes anything, it only decides which
// identifier (if any) a transcript refers to.
package command

import "sort"

// Action describes the recognition side of one configured command.
// The execution side lives with the command sink.
type Action struct {
	// Keyword is a single trigger word shorthand.
	Keyword string

	// Keywords lists additional trigger words.
	Keywords []string
}

// Command is one entry in the matching table: an identifier plus the
// keywords that trigger it.
type Command struct {
	Name     string
	Keywords []string
}

// TableFromActions builds an ordered matching table from a configured
// action map. Entries are ordered by name so matching is deterministic
// across runs. Malformed entries (empty name) are skipped, never fatal.
func TableFromActions(actions map[string]Action) []Command {
	names := make([]string, 0, len(actions))
	for name := range actions {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	table := make([]Command, 0, len(names))
	for _, name := range names {
		a := actions[name]
		var keywords []string
		if a.Keyword != "" {
			keywords = append(keywords, a.Keyword)
		}
		for _, k := range a.Keywords {
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		table = append(table, Command{Name: name, Keywords: keywords})
	}
	return table
}
