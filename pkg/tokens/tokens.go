// Package tokens measures text size in token-like units for response
// budgeting. Counting is deterministic and never fails: when no precise
// encoder is registered (or the registered one errors), it degrades to a
// coarse chars/4 heuristic.
package tokens

// charsPerToken is the divisor for the coarse byte-based estimate
// (roughly 4 bytes per token for typical English/code).
const charsPerToken = 4

// Encoder converts text into a token count. A model-specific BPE
// tokenizer can be registered to replace the heuristic.
type Encoder interface {
	Encode(text string) (int, error)
}

var encoder Encoder

// SetEncoder registers a precise encoder. Passing nil restores the
// heuristic-only behavior.
func SetEncoder(e Encoder) {
	encoder = e
}

// Count returns the measured size of text in tokens. It never panics
// and never returns a negative value; encoder failures fall back to
// the chars/4 estimate.
func Count(text string) (n int) {
	if encoder != nil {
		defer func() {
			if recover() != nil {
				n = estimate(text)
			}
		}()
		if c, err := encoder.Encode(text); err == nil && c >= 0 {
			return c
		}
	}
	return estimate(text)
}

func estimate(text string) int {
	return len(text) / charsPerToken
}
