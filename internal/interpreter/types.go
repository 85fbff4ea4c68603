package interpreter

// Params is the loosely-typed parameter bag extracted for an intent. Keys
// and value types are dictated by the intent's schema; numeric values are
// always float64, strings are trimmed, and a nil value is an explicit null
// from the model.
type Params map[string]any

// GetString returns the string value for a key, or "" when the key is
// absent, null, or not a string.
func (p Params) GetString(key string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetNumber returns the numeric value for a key and whether it was present.
func (p Params) GetNumber(key string) (float64, bool) {
	if v, ok := p[key]; ok {
		if n, ok := v.(float64); ok {
			return n, true
		}
	}
	return 0, false
}

// IsNull reports whether a key is present with an explicit null value.
func (p Params) IsNull(key string) bool {
	v, ok := p[key]
	return ok && v == nil
}

// Extraction is the outcome of a slot extractor. Degraded extractions are
// still valid results: Params holds a minimal fallback derived from the
// raw utterance and Reason says what went wrong, so callers and tests can
// observe the fallback path directly instead of inferring it.
type Extraction struct {
	Params   Params
	Degraded bool
	Reason   string
}

// ProcessInput carries one utterance into the interpreter.
type ProcessInput struct {
	Query string
}

// CommandResult is the interpreter's output contract: the classified
// intent, the extracted parameters, a human-readable confirmation of the
// action about to be taken, and the untouched original utterance. It is
// built once per ProcessQuery call and has no identity beyond it.
type CommandResult struct {
	Intent         Intent
	Params         Params
	Confirmation   string
	OriginalQuery  string
	Degraded       bool
	DegradedReason string
}
