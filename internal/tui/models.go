package tui

type View int

const (
	ViewSearch View = iota
	ViewDetail
)

// focusArea is the part of the search view that receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusToggles
	focusResults
)
