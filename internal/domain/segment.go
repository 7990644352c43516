package domain

// Marker delimits a highlighted span in simplified text
const Marker = "~"

// Segment is one piece of rendered text
type Segment struct {
	Text        string
	Highlighted bool
}
