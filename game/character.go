package game

type Character struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attributes BaseAttributes    `json:"attributes"`
	Derived    DerivedAttributes `json:"derived"`
}

// NewCharacter creates a character with derived stats at their maximum.
func NewCharacter(id, name string, base BaseAttributes) *Character {
	return &Character{
		ID:         id,
		Name:       name,
		Attributes: base,
		Derived:    CalculateDerived(base),
	}
}
