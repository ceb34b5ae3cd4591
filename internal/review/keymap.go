package review

// Mode selects the grading scale and initial reveal behavior of a session.
// Plain sessions grade on the coarse {2,3,5} scale and show each passage
// immediately; quiz sessions grade on the full 1..5 scale and start each
// passage hidden.
type Mode string

const (
	ModePlain Mode = "plain"
	ModeQuiz  Mode = "quiz"
)

// Scale returns the valid quality values for the mode, ascending.
func (m Mode) Scale() []int {
	if m == ModeQuiz {
		return []int{1, 2, 3, 4, 5}
	}
	return []int{2, 3, 5}
}

func (m Mode) ValidQuality(q int) bool {
	for _, v := range m.Scale() {
		if v == q {
			return true
		}
	}
	return false
}

// InitialRevealed reports whether a new current item starts visible.
func (m Mode) InitialRevealed() bool {
	return m != ModeQuiz
}

// QualityForKey maps a keyboard key to a grade for the mode. Plain sessions
// use 1/2/3 for hard/good/easy; quiz sessions take 1..5 directly plus "s" as
// a skip (grade 2).
func (m Mode) QualityForKey(key string) (int, bool) {
	if m == ModeQuiz {
		switch key {
		case "1", "2", "3", "4", "5":
			return int(key[0] - '0'), true
		case "s", "S":
			return 2, true
		}
		return 0, false
	}
	switch key {
	case "1":
		return 2, true
	case "2":
		return 3, true
	case "3":
		return 5, true
	}
	return 0, false
}

// IsRevealKey reports whether the key toggles visibility of the current item.
func IsRevealKey(key string) bool {
	return key == " " || key == "space" || key == "Space"
}
