package redact

import "regexp"

// Rule pairs a detection pattern with the label used in its replacement.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return []Rule{
		{
			Name:    "aws_key",
			Pattern: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		},
		{
			Name:    "api_key",
			Pattern: regexp.MustCompile(`(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		},
		{
			Name:    "private_key",
			Pattern: regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		},
		{
			Name:    "connection_string",
			Pattern: regexp.MustCompile(`(?:postgres|mongodb|mysql|redis)://[^\s"'` + "`" + `]+`),
		},
		{
			Name:    "jwt",
			Pattern: regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
		},
	}
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return []Rule{
		{
			Name:    "email",
			Pattern: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		},
		{
			Name:    "ipv4",
			Pattern: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		},
	}
}
