package domain

// Voice describes one synthesis voice exposed by the host platform.
// The core never synthesizes audio; it only ranks and selects voices.
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}
