// Package game computes a character's derived statistics from its base
// attributes and keeps created characters in an in-memory roster.
//
// CalculateDerived is the typed calculator. Derive accepts attributes keyed
// by name and fails with a *MissingAttributeError when one is absent.
//
//	Max HP / HP                        Constitution
//	Max Stamina / Stamina              Constitution × 2
//	Max MP / MP                        Magic × 2
//	Max Focus / Focus                  Willpower
//	Max Daily Fatigue / Daily Fatigue  Willpower × 5
package game
