// Package matching scores how well a user's skill set fits a job posting.
// Scoring is a pure computation: no I/O, no randomness, identical inputs
// always produce identical results.
package matching

import (
	"math"
	"strings"
)

const (
	exactWeight      = 0.5
	similarityWeight = 0.5
)

// Result is the explainable outcome of a scoring call. MatchedSkills and
// MissingSkills partition the input SkillSet: every skill lands in exactly
// one of the two lists, classified solely by exact containment. The
// statistical sub-score influences MatchScore only.
type Result struct {
	MatchScore    int
	ExactRatio    float64
	Similarity    float64
	MatchedSkills []string
	MissingSkills []string
}

// Score computes a 0-100 compatibility score between a skill set and a job
// corpus built by BuildCorpus.
//
// Two estimators are combined with equal weight: the fraction of skills
// found by case-insensitive substring containment in the corpus, and the
// TF-IDF cosine similarity between the joined skill list and the corpus.
// Rounding happens once at the end, half away from zero.
//
// An empty skill set scores 0 with both lists empty; there is nothing to
// match and nothing to report missing.
func Score(skills SkillSet, corpus string) Result {
	matched := make([]string, 0, len(skills))
	missing := make([]string, 0)
	if len(skills) == 0 {
		return Result{MatchedSkills: matched, MissingSkills: missing}
	}

	corpus = strings.ToLower(corpus)

	for _, sk := range skills {
		if strings.Contains(corpus, sk.Folded) {
			matched = append(matched, sk.Display)
		} else {
			missing = append(missing, sk.Display)
		}
	}
	exact := float64(len(matched)) / float64(len(skills))

	sim := cosineTFIDF(skillDocument(skills), corpus, phraseTerms(skills))

	raw := exactWeight*exact + similarityWeight*sim
	score := int(math.Round(raw * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		MatchScore:    score,
		ExactRatio:    exact,
		Similarity:    sim,
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

func skillDocument(skills SkillSet) string {
	parts := make([]string, 0, len(skills))
	for _, sk := range skills {
		parts = append(parts, sk.Folded)
	}
	return strings.Join(parts, " ")
}

func phraseTerms(skills SkillSet) []string {
	out := make([]string, 0)
	for _, sk := range skills {
		if strings.ContainsRune(sk.Folded, ' ') {
			out = append(out, sk.Folded)
		}
	}
	return out
}
