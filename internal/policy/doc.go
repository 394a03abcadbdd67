// Package policy holds the remux policy and the decision engine that turns a
// track inventory into strip, extract, OCR and merge work sets.
//
// Decide is pure: it performs no I/O and returns the same WorkSets for the
// same Inventory and Policy.
package policy
