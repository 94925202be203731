package factcheck

import (
	"fmt"
	"sync"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/world"
	"go.uber.org/zap"
)

// Checker validates claims against the world state and keeps the running
// validation history used for aggregate statistics. It only reads the world;
// it never mutates it.
type Checker struct {
	world  *world.State
	logger *zap.Logger

	mu        sync.Mutex
	extractor Extractor
	history   []domain.ValidationResult
}

func New(w *world.State, logger *zap.Logger) *Checker {
	return &Checker{
		world:     w,
		extractor: NewRegexExtractor(w),
		logger:    logger,
	}
}

// SetExtractor swaps in an alternative claim extractor. Safe to call while
// validations are in flight.
func (c *Checker) SetExtractor(e Extractor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extractor = e
}

// ValidateClaim checks one claim for a character. Caller-marked intentional
// lies and omissions are always valid: deliberate deception is recorded, not
// treated as inconsistency, and is excluded from the history. Everything else
// is checked against the world and appended to the history.
func (c *Checker) ValidateClaim(claim domain.Claim, character string, markedLie, markedOmission bool) domain.ValidationResult {
	if markedLie {
		return domain.ValidationResult{
			Valid:  true,
			Claim:  claim,
			Reason: "intentional lie by character",
			Lie:    true,
		}
	}
	if markedOmission {
		return domain.ValidationResult{
			Valid:    true,
			Claim:    claim,
			Reason:   "intentional omission by character",
			Omission: true,
		}
	}

	result := c.checkAgainstWorld(claim)

	if !result.Valid {
		c.logger.Debug("claim failed validation",
			zap.String("character", character),
			zap.String("claim", claim.Text),
			zap.String("reason", result.Reason))
	}

	c.mu.Lock()
	c.history = append(c.history, result)
	c.mu.Unlock()

	return result
}

func (c *Checker) checkAgainstWorld(claim domain.Claim) domain.ValidationResult {
	switch claim.Category {
	case domain.ClaimLocation:
		if c.world.HasLocation(claim.Value) {
			truth := domain.StringValue(claim.Value)
			return domain.ValidationResult{
				Valid:      true,
				Claim:      claim,
				Reason:     "location exists in world",
				WorldTruth: &truth,
			}
		}
		return domain.ValidationResult{
			Valid:  false,
			Claim:  claim,
			Reason: fmt.Sprintf("location %q does not exist in world state", claim.Value),
		}

	case domain.ClaimPerson:
		if c.world.HasCharacter(claim.Value) {
			truth := domain.StringValue(claim.Value)
			return domain.ValidationResult{
				Valid:      true,
				Claim:      claim,
				Reason:     "character exists in world",
				WorldTruth: &truth,
			}
		}
		return domain.ValidationResult{
			Valid:  false,
			Claim:  claim,
			Reason: fmt.Sprintf("character %q does not exist in world state", claim.Value),
		}
	}

	if truth, ok := c.world.Fact(claim.Key); ok {
		if truth.EqualsFold(claim.Value) {
			return domain.ValidationResult{
				Valid:      true,
				Claim:      claim,
				Reason:     "matches world state fact",
				WorldTruth: &truth,
			}
		}
		// A contradiction of recorded truth is an unintentional lie.
		return domain.ValidationResult{
			Valid:      false,
			Claim:      claim,
			Reason:     fmt.Sprintf("contradicts world state, truth: %s", truth.String()),
			WorldTruth: &truth,
			Lie:        true,
		}
	}

	// Open-world: unknown information is not presumed false.
	return domain.ValidationResult{
		Valid:  true,
		Claim:  claim,
		Reason: "no contradiction with known facts",
	}
}

// ValidateStatement extracts claims from a statement and validates each one.
// Claims whose verbatim text appears in markedLies or markedOmissions take the
// intentional branches. The overall boolean is false when any claim is invalid
// without being a recorded lie.
func (c *Checker) ValidateStatement(statement, character string, markedLies, markedOmissions []string) (bool, []domain.ValidationResult) {
	c.mu.Lock()
	extractor := c.extractor
	c.mu.Unlock()
	claims := extractor.Extract(statement)

	allValid := true
	results := make([]domain.ValidationResult, 0, len(claims))
	for _, claim := range claims {
		result := c.ValidateClaim(claim, character,
			containsText(markedLies, claim.Text),
			containsText(markedOmissions, claim.Text))
		results = append(results, result)

		if !result.Valid && !result.Lie {
			allValid = false
		}
	}
	return allValid, results
}

func containsText(list []string, text string) bool {
	for _, s := range list {
		if s == text {
			return true
		}
	}
	return false
}

// Summary aggregates the validation history. AccuracyRate is 0 when no
// validations have occurred.
func (c *Checker) Summary() domain.ValidationSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := domain.ValidationSummary{TotalValidations: len(c.history)}
	for _, r := range c.history {
		if r.Valid {
			s.ValidClaims++
		}
		if r.Lie {
			s.Lies++
		}
		if r.Omission {
			s.Omissions++
		}
	}
	s.InvalidClaims = s.TotalValidations - s.ValidClaims
	if s.TotalValidations > 0 {
		s.AccuracyRate = float64(s.ValidClaims) / float64(s.TotalValidations) * 100
	}
	return s
}

// History returns a copy of the validation log, oldest first. The log grows
// for the life of the process; long deployments must bound it externally.
func (c *Checker) History() []domain.ValidationResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.ValidationResult, len(c.history))
	copy(out, c.history)
	return out
}
