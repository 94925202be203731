package factcheck

import (
	"testing"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/world"
	"go.uber.org/zap"
)

func newTestChecker() (*Checker, *world.State) {
	w := world.New()
	return New(w, zap.NewNop()), w
}

func TestValidateClaimMarkedLie(t *testing.T) {
	c, _ := newTestChecker()
	claim := domain.Claim{Text: "I was in the cellar", Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "cellar"}

	// A marked lie is valid regardless of what validation would conclude.
	result := c.ValidateClaim(claim, "Nathan Cross", true, false)
	if !result.Valid || !result.Lie || result.Omission {
		t.Errorf("unexpected result: %+v", result)
	}

	// Intentional results stay out of the history.
	if got := c.Summary().TotalValidations; got != 0 {
		t.Errorf("expected empty history, got %d", got)
	}
}

func TestValidateClaimMarkedOmission(t *testing.T) {
	c, _ := newTestChecker()
	claim := domain.Claim{Text: "we talked about the estate", Category: domain.ClaimFact, Key: "topic", Value: "estate"}

	result := c.ValidateClaim(claim, "Nathan Cross", false, true)
	if !result.Valid || !result.Omission || result.Lie {
		t.Errorf("unexpected result: %+v", result)
	}
	if got := c.Summary().TotalValidations; got != 0 {
		t.Errorf("expected empty history, got %d", got)
	}
}

func TestValidateLocationClaim(t *testing.T) {
	c, w := newTestChecker()
	w.AddLocation("Library")

	claim := domain.Claim{Text: "I was in the library", Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "library"}
	result := c.ValidateClaim(claim, "Nathan Cross", false, false)
	if !result.Valid {
		t.Errorf("existing location should validate: %+v", result)
	}

	claim.Value = "cellar"
	result = c.ValidateClaim(claim, "Nathan Cross", false, false)
	if result.Valid || result.Lie {
		t.Errorf("unknown location should be invalid without lie flag: %+v", result)
	}
}

func TestValidatePersonClaim(t *testing.T) {
	c, w := newTestChecker()
	w.AddCharacter("Helena")

	claim := domain.Claim{Text: "Helena was there", Category: domain.ClaimPerson, Key: KeyMentionedPerson, Value: "Helena"}
	if result := c.ValidateClaim(claim, "Nathan Cross", false, false); !result.Valid {
		t.Errorf("registered character should validate: %+v", result)
	}

	claim.Value = "Marcus"
	if result := c.ValidateClaim(claim, "Nathan Cross", false, false); result.Valid {
		t.Errorf("unregistered character should be invalid: %+v", result)
	}
}

func TestValidateGenericFactClaim(t *testing.T) {
	c, w := newTestChecker()
	w.AddFact(domain.Fact{Key: "cause_of_death", Value: domain.StringValue("Poison"), Public: true})

	tests := []struct {
		name     string
		key      string
		value    string
		valid    bool
		lie      bool
		truthSet bool
	}{
		{"case-insensitive match", "cause_of_death", "poison", true, false, true},
		{"contradiction is unintentional lie", "cause_of_death", "heart attack", false, true, true},
		{"unknown key is open-world valid", "murder_weapon", "dagger", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := domain.Claim{Text: tt.value, Category: domain.ClaimFact, Key: tt.key, Value: tt.value}
			result := c.ValidateClaim(claim, "Nathan Cross", false, false)
			if result.Valid != tt.valid || result.Lie != tt.lie {
				t.Errorf("got valid=%v lie=%v, want valid=%v lie=%v", result.Valid, result.Lie, tt.valid, tt.lie)
			}
			if (result.WorldTruth != nil) != tt.truthSet {
				t.Errorf("world truth presence = %v, want %v", result.WorldTruth != nil, tt.truthSet)
			}
			if tt.name == "unknown key is open-world valid" && result.Reason != "no contradiction with known facts" {
				t.Errorf("unexpected reason %q", result.Reason)
			}
		})
	}
}

func TestValidateStatement(t *testing.T) {
	c, w := newTestChecker()
	w.AddLocation("Library")
	w.AddCharacter("Helena")

	ok, results := c.ValidateStatement("I was in the library and Helena was there.", "Nathan Cross", nil, nil)
	if !ok {
		t.Errorf("consistent statement should pass: %+v", results)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 claims, got %+v", results)
	}

	// Unknown location without a lie marker fails the statement.
	ok, results = c.ValidateStatement("I was in the cellar.", "Nathan Cross", nil, nil)
	if ok {
		t.Errorf("invalid unmarked claim should fail the statement: %+v", results)
	}

	// Marking the exact claim text as a lie keeps the statement passing.
	ok, results = c.ValidateStatement("I was in the cellar.", "Nathan Cross", []string{"I was in the cellar"}, nil)
	if !ok {
		t.Errorf("marked lie should not fail the statement: %+v", results)
	}
	if len(results) != 1 || !results[0].Lie || !results[0].Valid {
		t.Errorf("expected recorded lie result, got %+v", results)
	}
}

type fixedExtractor struct {
	claims []domain.Claim
}

func (f fixedExtractor) Extract(string) []domain.Claim {
	return f.claims
}

func TestSetExtractor(t *testing.T) {
	c, w := newTestChecker()
	w.AddLocation("Library")

	c.SetExtractor(fixedExtractor{claims: []domain.Claim{
		{Text: "the library", Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "Library"},
	}})

	ok, results := c.ValidateStatement("ignored by the stub", "Nathan Cross", nil, nil)
	if !ok || len(results) != 1 {
		t.Fatalf("expected one valid claim from swapped extractor, got ok=%v results=%+v", ok, results)
	}
}

func TestSetExtractorDuringValidation(t *testing.T) {
	c, w := newTestChecker()
	w.AddLocation("Library")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			c.ValidateStatement("I was in the library.", "Nathan Cross", nil, nil)
		}
	}()
	for i := 0; i < 50; i++ {
		c.SetExtractor(fixedExtractor{})
		c.SetExtractor(NewRegexExtractor(w))
	}
	<-done
}

func TestSummary(t *testing.T) {
	c, w := newTestChecker()

	if got := c.Summary(); got.AccuracyRate != 0 || got.TotalValidations != 0 {
		t.Errorf("empty history should have zero accuracy, got %+v", got)
	}

	w.AddLocation("Library")
	w.AddFact(domain.Fact{Key: "cause_of_death", Value: domain.StringValue("Poison"), Public: true})

	c.ValidateClaim(domain.Claim{Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "Library"}, "n", false, false)
	c.ValidateClaim(domain.Claim{Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "Cellar"}, "n", false, false)
	c.ValidateClaim(domain.Claim{Category: domain.ClaimFact, Key: "cause_of_death", Value: "accident"}, "n", false, false)
	c.ValidateClaim(domain.Claim{Category: domain.ClaimFact, Key: "x", Value: "y"}, "n", true, false) // intentional, not counted

	got := c.Summary()
	if got.TotalValidations != 3 {
		t.Errorf("expected 3 validations, got %d", got.TotalValidations)
	}
	if got.ValidClaims != 1 || got.InvalidClaims != 2 {
		t.Errorf("expected 1 valid / 2 invalid, got %+v", got)
	}
	if got.Lies != 1 {
		t.Errorf("expected 1 recorded lie, got %d", got.Lies)
	}
	wantRate := 1.0 / 3.0 * 100
	if got.AccuracyRate < wantRate-0.01 || got.AccuracyRate > wantRate+0.01 {
		t.Errorf("accuracy rate = %v, want ~%v", got.AccuracyRate, wantRate)
	}
}

func TestHistoryCopy(t *testing.T) {
	c, w := newTestChecker()
	w.AddLocation("Library")
	c.ValidateClaim(domain.Claim{Category: domain.ClaimLocation, Key: KeyMentionedLocation, Value: "Library"}, "n", false, false)

	h := c.History()
	if len(h) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h))
	}
	h[0].Reason = "mutated"
	if c.History()[0].Reason == "mutated" {
		t.Error("History should return a copy")
	}
}
