package matching

import (
	"math"
	"sort"
	"strings"
)

// Common English filler words excluded from the term vocabulary.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"can", "do", "for", "from", "had", "has", "have", "if", "in",
		"into", "is", "it", "its", "more", "most", "my", "no", "not",
		"of", "on", "or", "our", "other", "should", "so", "some", "such",
		"than", "that", "the", "their", "then", "there", "these", "they",
		"this", "to", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "will", "with", "would",
		"you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

// tokenize splits already-lowercased text into word tokens. Letters, digits
// and the symbols '+', '#' count as word characters so skills like "c++" and
// "c#" survive. Single-rune tokens are dropped.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#':
			return false
		case r > 127:
			return false
		}
		return true
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// termCounts builds the term-frequency map of a document: unigram word
// tokens minus stopwords, plus one phrase term per multi-word skill counted
// by non-overlapping substring occurrences. Counting phrases as single terms
// keeps skills like "machine learning" represented as one unit of vocabulary
// on both sides of the comparison.
func termCounts(doc string, phrases []string) map[string]float64 {
	counts := make(map[string]float64)
	for _, tok := range tokenize(doc) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		counts[tok]++
	}
	for _, p := range phrases {
		if n := strings.Count(doc, p); n > 0 {
			counts[p] += float64(n)
		}
	}
	return counts
}

// cosineTFIDF computes the cosine similarity between the TF-IDF vectors of
// two lowercased documents. IDF is smoothed (ln((1+n)/(1+df))+1 over the
// two-document corpus) and vectors are L2-normalized, so the result is in
// [0,1]. An empty vocabulary on either side yields 0.
//
// Accumulation walks the vocabulary in sorted order; floating-point addition
// is not associative, and map order would make repeat calls drift in the
// last bits.
func cosineTFIDF(docA, docB string, phrases []string) float64 {
	ca := termCounts(docA, phrases)
	cb := termCounts(docB, phrases)
	if len(ca) == 0 || len(cb) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(ca)+len(cb))
	for term := range ca {
		vocab = append(vocab, term)
	}
	for term := range cb {
		if _, ok := ca[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	var dot, normA, normB float64
	for _, term := range vocab {
		df := 0.0
		if ca[term] > 0 {
			df++
		}
		if cb[term] > 0 {
			df++
		}
		idf := math.Log(3.0/(1.0+df)) + 1.0

		wa := ca[term] * idf
		wb := cb[term] * idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
