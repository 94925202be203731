package factcheck

import (
	"fmt"
	"strings"
)

// AnalyzeForDeception flags statements textually adjacent to the speaker's
// secrets as candidate omissions: any word overlap between a secret and the
// statement produces a signal. Lie detection is a deliberate placeholder and
// always returns an empty list; a smarter detector can replace this without
// changing callers.
func AnalyzeForDeception(statement string, secrets []string) (likelyLies, likelyOmissions []string) {
	statementWords := wordSet(statement)

	for _, secret := range secrets {
		for w := range wordSet(secret) {
			if _, ok := statementWords[w]; ok {
				likelyOmissions = append(likelyOmissions, fmt.Sprintf("potential omission related to: %s", secret))
				break
			}
		}
	}

	return nil, likelyOmissions
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}
