package knowledge

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tfidfVectorizer builds a TF-IDF vector space over a document set. The
// space is rebuilt from scratch for every keyword search: IDF must reflect
// the corpus as it stands at query time (plus the query itself as one extra
// document), so the vectorizer is never cached across ingestions.
type tfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// Tokens of at least two word characters, lowercased.
var tfidfTokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tfidfTokenPattern.FindAllString(strings.ToLower(text), -1)
}

// newTFIDFVectorizer fits vocabulary and smoothed IDF values over docs:
// idf(t) = ln((1+N)/(1+df(t))) + 1.
func newTFIDFVectorizer(docs []string) *tfidfVectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering keeps vectors deterministic.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &tfidfVectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// vectorize returns the L2-normalized TF-IDF vector of doc.
func (v *tfidfVectorizer) vectorize(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, tok := range tokenize(doc) {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// dotProduct of two vectors of equal length. With L2-normalized inputs this
// is their cosine similarity.
func dotProduct(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// keywordRank scores every chunk in the snapshot against the query by TF-IDF
// cosine similarity and returns the topK candidates. The vector space spans
// the chunks plus the query appended as one extra document.
func keywordRank(snap CorpusSnapshot, query string, topK int) []ScoredCandidate {
	if snap.Size() == 0 {
		return nil
	}

	docs := make([]string, 0, snap.Size()+1)
	docs = append(docs, snap.Chunks...)
	docs = append(docs, query)

	vectorizer := newTFIDFVectorizer(docs)
	queryVec := vectorizer.vectorize(query)

	candidates := make([]ScoredCandidate, snap.Size())
	for i, chunk := range snap.Chunks {
		candidates[i] = ScoredCandidate{
			Text:     chunk,
			Score:    dotProduct(queryVec, vectorizer.vectorize(chunk)),
			Position: i,
		}
	}
	return selectTop(candidates, topK)
}
