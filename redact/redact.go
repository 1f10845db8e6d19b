// Package redact scrubs secrets and PII from session summaries before they
// leave the process, e.g. ahead of every broadcast delivery.
package redact

import (
	"regexp"
	"sort"

	"github.com/sonnes/drishti/core"
)

// Config controls which rule sets the Redactor applies.
type Config struct {
	Secrets   bool
	PII       bool
	Allowlist []string // regex patterns whose matches are left untouched
}

// Redactor applies redaction rules to all prompt and response text in a
// summary.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist}
}

// Transform scrubs s in place. Suitable as a broadcast.Options.Transform:
// it runs after derivation and before any delivery, so observers never see
// unredacted text.
func (r *Redactor) Transform(s *core.Summary) {
	s.Title = r.redactString(s.Title)
	for i := range s.Exchanges {
		s.Exchanges[i].Prompt = r.redactString(s.Exchanges[i].Prompt)
		s.Exchanges[i].Response = r.redactString(s.Exchanges[i].Response)
	}
}

// redactString applies all rules to s. Overlapping matches resolve to
// earliest start, then longest. Allowlisted values are skipped.
func (r *Redactor) redactString(s string) string {
	if len(s) == 0 {
		return s
	}

	type replacement struct {
		start int
		end   int
		text  string
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, loc := range rule.Pattern.FindAllStringIndex(s, -1) {
			if r.isAllowed(s[loc[0]:loc[1]]) {
				continue
			}
			reps = append(reps, replacement{
				start: loc[0],
				end:   loc[1],
				text:  "[REDACTED:" + rule.Name + "]",
			})
		}
	}

	if len(reps) == 0 {
		return s
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	var result []byte
	pos := 0
	for _, rep := range reps {
		if rep.start < pos {
			continue // overlaps with a previous replacement
		}
		result = append(result, s[pos:rep.start]...)
		result = append(result, rep.text...)
		pos = rep.end
	}
	result = append(result, s[pos:]...)
	return string(result)
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
