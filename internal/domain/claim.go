package domain

// ClaimCategory is the closed set of claim types the extractor produces.
type ClaimCategory string

const (
	ClaimLocation ClaimCategory = "location"
	ClaimTime     ClaimCategory = "time"
	ClaimPerson   ClaimCategory = "person"
	// ClaimFact is a generic keyed claim checked directly against stored facts.
	ClaimFact ClaimCategory = "fact"
)

// Claim is a normalized assertion extracted from free text, pending validation.
// Text is the verbatim matched substring.
type Claim struct {
	Text     string        `json:"claim_text"`
	Category ClaimCategory `json:"category"`
	Key      string        `json:"key"`
	Value    string        `json:"value"`
}

// ValidationResult is the immutable verdict for one claim. Lie covers both
// caller-marked deliberate lies and unintentional contradictions of stored
// facts; Reason explains which.
type ValidationResult struct {
	Valid      bool   `json:"is_valid"`
	Claim      Claim  `json:"claim"`
	Reason     string `json:"reason"`
	WorldTruth *Value `json:"world_truth,omitempty"`
	Lie        bool   `json:"is_lie"`
	Omission   bool   `json:"is_omission"`
}

// ValidationSummary aggregates the running validation history.
type ValidationSummary struct {
	TotalValidations int     `json:"total_validations"`
	ValidClaims      int     `json:"valid_claims"`
	InvalidClaims    int     `json:"invalid_claims"`
	Lies             int     `json:"lies"`
	Omissions        int     `json:"omissions"`
	AccuracyRate     float64 `json:"accuracy_rate"`
}
