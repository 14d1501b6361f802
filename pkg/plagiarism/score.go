package plagiarism

import "math"

// epsilon guards denominators against all-zero vectors.
const epsilon = 1e-10

// Fusion weights for the explicit resume-vs-JD comparison. Exact keyword
// overlap with a job description is a stronger fraud signal than loose
// semantic closeness, so the sparse side dominates.
const (
	denseWeight  = 0.3
	sparseWeight = 0.7
)

// cosineSimilarity computes the cosine of the angle between two dense
// vectors. Mismatched lengths are compared over the shorter prefix.
func cosineSimilarity(a []float32, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + epsilon)
}

// sparseScore measures how much of the resume chunk's sparse mass is
// corroborated by the JD vector. The normalizer is deliberately
// asymmetric (resume-only): it weights by the share of the chunk's own
// lexical weight that the JD confirms, not a symmetric cosine.
func sparseScore(resume map[uint32]float32, jd map[uint32]float32) float64 {
	var common float64
	found := false
	for idx, rw := range resume {
		if jw, ok := jd[idx]; ok {
			common += float64(rw) * float64(jw)
			found = true
		}
	}
	if !found {
		return 0
	}

	var total float64
	for _, rw := range resume {
		total += float64(rw)
	}
	return common / (total + epsilon)
}

// combinedScore fuses the dense and sparse similarity of one chunk pair.
func combinedScore(dense float64, sparse float64) float64 {
	return denseWeight*dense + sparseWeight*sparse
}
