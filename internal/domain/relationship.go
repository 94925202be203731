package domain

// Relationship links an unordered pair of characters. Strength is a 1-10 scale.
type Relationship struct {
	CharacterA  string `json:"character_a"`
	CharacterB  string `json:"character_b"`
	Type        string `json:"relationship_type"`
	Description string `json:"description"`
	Strength    int    `json:"strength"`
	Public      bool   `json:"is_public"`
}

// Involves reports whether the character is one of the pair.
func (r *Relationship) Involves(character string) bool {
	return r.CharacterA == character || r.CharacterB == character
}

// Between reports whether the relationship links the two characters,
// in either order.
func (r *Relationship) Between(a, b string) bool {
	return (r.CharacterA == a && r.CharacterB == b) ||
		(r.CharacterA == b && r.CharacterB == a)
}

// Other returns the counterpart of the given character, or an empty string
// when the character is not part of the pair.
func (r *Relationship) Other(character string) string {
	switch character {
	case r.CharacterA:
		return r.CharacterB
	case r.CharacterB:
		return r.CharacterA
	}
	return ""
}
