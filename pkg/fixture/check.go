package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// CheckError describes one violation found in a written fixture
type CheckError struct {
	Index  int
	Field  string
	Reason string
}

func (e *CheckError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

func violation(i int, field, format string, args ...any) *CheckError {
	return &CheckError{Index: i, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// marshalLiteral encodes v without escaping HTML characters so skills such as
// "C++" or a school with "&" read the same on disk as in the vocabulary.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeStrings decodes raw as a JSON array whose elements are all strings
func decodeStrings(raw json.RawMessage) ([]string, error) {
	var elems []any
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, e)
		}
		out[i] = s
	}
	return out, nil
}

// checkSkills validates a joined skill list against vocab
func checkSkills(i int, field, joined string, vocab Vocabulary) []error {
	var errs []error
	skills := strings.Split(joined, SkillSeparator)
	if n := len(skills); n < vocab.MinSkills || n > vocab.MaxSkills {
		errs = append(errs, violation(i, field, "%d skills, want %d-%d", n, vocab.MinSkills, vocab.MaxSkills))
	}
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		if !slices.Contains(vocab.Skills, s) {
			errs = append(errs, violation(i, field, "unknown skill %q", s))
		}
		if seen[s] {
			errs = append(errs, violation(i, field, "duplicate skill %q", s))
		}
		seen[s] = true
	}
	return errs
}

func checkOneOf(i int, field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return violation(i, field, "%q not in %v", value, allowed)
	}
	return nil
}
