package domain

// RevealState tracks a typewriter reveal of FullText.
// Revealed always equals the first Cursor runes of FullText.
type RevealState struct {
	FullText string
	Revealed string
	Cursor   int
}

// Finished reports whether every character has been revealed
func (s RevealState) Finished() bool {
	return s.Revealed == s.FullText
}
