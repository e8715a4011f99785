package matching

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSkillsInput is returned when NormalizeSkills receives a value
// that is neither a comma-separated string nor a list of strings.
var ErrInvalidSkillsInput = errors.New("skills must be a comma-separated string or a list of strings")

// Skill keeps the casing of the first occurrence for display and a
// case-folded form used for matching.
type Skill struct {
	Display string
	Folded  string
}

// SkillSet is an ordered, case-insensitively de-duplicated list of skills.
type SkillSet []Skill

func (s SkillSet) Names() []string {
	out := make([]string, 0, len(s))
	for _, sk := range s {
		out = append(out, sk.Display)
	}
	return out
}

// NormalizeSkills builds a SkillSet from a comma-separated string, a
// []string, or a []any of strings as produced by decoding a JSON array.
// Empty or nil input yields an empty SkillSet, not an error. Any other
// dynamic type, or a non-string list element, fails fast.
func NormalizeSkills(raw any) (SkillSet, error) {
	switch v := raw.(type) {
	case nil:
		return SkillSet{}, nil
	case string:
		return normalizeEntries(strings.Split(v, ",")), nil
	case []string:
		return normalizeEntries(v), nil
	case []any:
		entries := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list element is %T", ErrInvalidSkillsInput, e)
			}
			entries = append(entries, s)
		}
		return normalizeEntries(entries), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidSkillsInput, raw)
	}
}

func normalizeEntries(entries []string) SkillSet {
	seen := make(map[string]struct{}, len(entries))
	out := make(SkillSet, 0, len(entries))
	for _, e := range entries {
		t := strings.TrimSpace(e)
		if t == "" {
			continue
		}
		folded := strings.ToLower(t)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, Skill{Display: t, Folded: folded})
	}
	return out
}

// BuildCorpus joins the non-empty fields of a job posting with single spaces
// and case-folds the result. Optional requirements/tags go in extra; absent
// fields are omitted rather than replaced with placeholders.
func BuildCorpus(title, description string, extra ...string) string {
	fields := make([]string, 0, 2+len(extra))
	for _, f := range append([]string{title, description}, extra...) {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return strings.ToLower(strings.Join(fields, " "))
}
