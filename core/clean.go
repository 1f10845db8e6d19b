package core

import (
	"regexp"
	"strings"
)

// commandTagRE matches the XML wrappers Claude Code injects around slash
// command invocations and their captured output.
var commandTagRE = regexp.MustCompile(`<(command-name|command-message|command-args|local-command-stdout|local-command-stderr)[^>]*>`)

// openTagRE matches an XML opening tag like <tag-name> or <tag_name attr="val">.
var openTagRE = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_-]*)[^>]*>`)

// IsCommandText reports whether s carries command-wrapper markup — the
// machine-injected record of a slash command rather than typed human input.
func IsCommandText(s string) bool {
	return commandTagRE.MatchString(s)
}

// CleanPromptText strips system-injected XML blocks (IDE metadata, system
// reminders) from user text, leaving only what the human actually typed.
// Returns the trimmed remainder, which may be empty.
func CleanPromptText(s string) string {
	// Strip all <tag>…</tag> blocks by finding opening tags and their
	// matching closing tags. Go regexp doesn't support backreferences,
	// so we walk matches manually.
	for {
		loc := openTagRE.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		tagName := s[loc[2]:loc[3]]
		closeTag := "</" + tagName + ">"
		closeIdx := strings.Index(s[loc[1]:], closeTag)
		if closeIdx < 0 {
			// No matching close tag — strip just the open tag.
			s = s[:loc[0]] + s[loc[1]:]
			continue
		}
		end := loc[1] + closeIdx + len(closeTag)
		s = s[:loc[0]] + s[end:]
	}

	return strings.TrimSpace(s)
}
