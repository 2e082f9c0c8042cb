package game

import "fmt"

// Base attribute names, as accepted in named-attribute input.
const (
	AttrConstitution = "Constitution"
	AttrMagic        = "Magic"
	AttrWillpower    = "Willpower"
)

// BaseAttributeNames lists the required base attributes in lookup order.
var BaseAttributeNames = []string{AttrConstitution, AttrMagic, AttrWillpower}

// Formula multipliers.
const (
	staminaPerConstitution = 2
	mpPerMagic             = 2
	fatiguePerWillpower    = 5
)

// MaxAttributeValue bounds base attributes in CheckBounds so that every
// derived value fits in an int.
const MaxAttributeValue = 1_000_000

// BaseAttributes are the three core statistics a character is built from.
// CalculateDerived does not bound them: values beyond MaxAttributeValue in
// magnitude can overflow the derived multiplications.
type BaseAttributes struct {
	Constitution int `json:"Constitution"`
	Magic        int `json:"Magic"`
	Willpower    int `json:"Willpower"`
}

// DerivedAttributes holds each derived statistic as a max/current pair.
// Current values start equal to their max.
type DerivedAttributes struct {
	MaxHP           int `json:"max_hp"`
	HP              int `json:"hp"`
	MaxStamina      int `json:"max_stamina"`
	Stamina         int `json:"stamina"`
	MaxMP           int `json:"max_mp"`
	MP              int `json:"mp"`
	MaxFocus        int `json:"max_focus"`
	Focus           int `json:"focus"`
	MaxDailyFatigue int `json:"max_daily_fatigue"`
	DailyFatigue    int `json:"daily_fatigue"`
}

// MissingAttributeError reports a base attribute absent from named input.
type MissingAttributeError struct {
	Name string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q", e.Name)
}

// InvalidAttributeError reports a base attribute rejected by CheckBounds.
type InvalidAttributeError struct {
	Name     string
	Value    int
	Min, Max int
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("attribute %q has value %d, must be in range %d..%d", e.Name, e.Value, e.Min, e.Max)
}

// CalculateDerived computes the derived statistics for b.
func CalculateDerived(b BaseAttributes) DerivedAttributes {
	hp := b.Constitution
	stamina := b.Constitution * staminaPerConstitution
	mp := b.Magic * mpPerMagic
	focus := b.Willpower
	fatigue := b.Willpower * fatiguePerWillpower

	return DerivedAttributes{
		MaxHP:           hp,
		HP:              hp,
		MaxStamina:      stamina,
		Stamina:         stamina,
		MaxMP:           mp,
		MP:              mp,
		MaxFocus:        focus,
		Focus:           focus,
		MaxDailyFatigue: fatigue,
		DailyFatigue:    fatigue,
	}
}

// ParseBaseAttributes builds BaseAttributes from values keyed by attribute
// name. Unknown keys are ignored. The first absent attribute, in
// BaseAttributeNames order, is reported as a *MissingAttributeError.
func ParseBaseAttributes(values map[string]int) (BaseAttributes, error) {
	for _, name := range BaseAttributeNames {
		if _, ok := values[name]; !ok {
			return BaseAttributes{}, &MissingAttributeError{Name: name}
		}
	}
	return BaseAttributes{
		Constitution: values[AttrConstitution],
		Magic:        values[AttrMagic],
		Willpower:    values[AttrWillpower],
	}, nil
}

// Derive parses named base attributes and computes their derived statistics.
func Derive(values map[string]int) (DerivedAttributes, error) {
	base, err := ParseBaseAttributes(values)
	if err != nil {
		return DerivedAttributes{}, err
	}
	return CalculateDerived(base), nil
}

// Validate rejects base attributes outside 0..MaxAttributeValue.
// CalculateDerived does not call it.
func (b BaseAttributes) Validate() error {
	return b.CheckBounds(false)
}

// CheckBounds rejects base attributes above MaxAttributeValue, and below
// zero unless allowNegative is set, in which case the lower bound is
// -MaxAttributeValue.
func (b BaseAttributes) CheckBounds(allowNegative bool) error {
	lo := 0
	if allowNegative {
		lo = -MaxAttributeValue
	}
	for _, name := range BaseAttributeNames {
		if v := b.Value(name); v < lo || v > MaxAttributeValue {
			return &InvalidAttributeError{Name: name, Value: v, Min: lo, Max: MaxAttributeValue}
		}
	}
	return nil
}

// Value returns the named attribute, or 0 for an unknown name.
func (b BaseAttributes) Value(name string) int {
	switch name {
	case AttrConstitution:
		return b.Constitution
	case AttrMagic:
		return b.Magic
	case AttrWillpower:
		return b.Willpower
	}
	return 0
}

// Labeled returns the derived statistics keyed by display label.
func (d DerivedAttributes) Labeled() map[string]int {
	return map[string]int{
		"Max HP":            d.MaxHP,
		"HP":                d.HP,
		"Max Stamina":       d.MaxStamina,
		"Stamina":           d.Stamina,
		"Max MP":            d.MaxMP,
		"MP":                d.MP,
		"Max Focus":         d.MaxFocus,
		"Focus":             d.Focus,
		"Max Daily Fatigue": d.MaxDailyFatigue,
		"Daily Fatigue":     d.DailyFatigue,
	}
}
