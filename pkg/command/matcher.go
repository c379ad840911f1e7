package command

import "strings"

// Match maps a transcript to a command identifier, case-insensitively.
//
// Direct-name matches win: if the transcript contains a command's name as
// a substring, that command is returned even when an earlier command's
// keyword would also match. Otherwise the first command (in table order)
// with a keyword present in the transcript wins. Returns "" when nothing
// matches, the transcript is empty, or the table is empty.
func Match(transcript string, table []Command) string {
	norm := strings.ToLower(strings.TrimSpace(transcript))
	if norm == "" || len(table) == 0 {
		return ""
	}

	for _, cmd := range table {
		if cmd.Name == "" {
			continue
		}
		if strings.Contains(norm, strings.ToLower(cmd.Name)) {
			return cmd.Name
		}
	}

	for _, cmd := range table {
		if cmd.Name == "" {
			continue
		}
		for _, kw := range cmd.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(norm, strings.ToLower(kw)) {
				return cmd.Name
			}
		}
	}

	return ""
}
