package core

// Turn groups one or more consecutive exchanges sharing a single triggering
// human prompt, representing one request-response cycle. Turns are derived
// on demand from a Summary and never persisted.
type Turn struct {
	// Prompt is the human prompt that opened the turn. Empty for turns
	// whose output occurred without an associated prompt.
	Prompt    string
	Exchanges []Exchange
}

// GroupTurns folds a flat exchange list into turns. An exchange carrying a
// prompt starts a new turn; a promptless exchange joins the open turn, or
// opens a promptless one when it is the first. Every exchange lands in
// exactly one turn, in original order.
func GroupTurns(exchanges []Exchange) []Turn {
	var turns []Turn
	var current *Turn

	for _, ex := range exchanges {
		if ex.HasPrompt() {
			if current != nil {
				turns = append(turns, *current)
			}
			current = &Turn{Prompt: ex.Prompt}
		} else if current == nil {
			current = &Turn{}
		}
		current.Exchanges = append(current.Exchanges, ex)
	}
	if current != nil {
		turns = append(turns, *current)
	}
	return turns
}

// Totals sums the usage of all exchanges in this turn.
func (t Turn) Totals() Usage {
	var total Usage
	for _, ex := range t.Exchanges {
		total.Add(ex.Usage)
	}
	return total
}

// Response returns the last non-empty response text in the turn — the
// assistant's final answer after any intermediate tool-driven calls.
func (t Turn) Response() string {
	for i := len(t.Exchanges) - 1; i >= 0; i-- {
		if t.Exchanges[i].Response != "" {
			return t.Exchanges[i].Response
		}
	}
	return ""
}
