package verify

// Verifier checks whether a candidate plaintext hashes to a target digest.
// Implementations are stateless and safe for concurrent use; a clean
// mismatch is reported as NoMatch, never as an error.
type Verifier interface {
	Algorithm() Algorithm
	Check(candidate, target string) Outcome
	// ValidateTarget reports whether target is well formed for the algorithm.
	ValidateTarget(target string) error
}
