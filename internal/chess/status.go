package chess

import "fmt"

type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{"ongoing", "check", "checkmate", "stalemate"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Over reports whether the status ends the game.
func (s Status) Over() bool {
	return s == Checkmate || s == Stalemate
}

// Status classifies the position for the player to move.
func (m *Match) Status(owner PlayerID) Status {
	inCheck := m.kingSafety(owner).inCheck()
	hasMove := m.HasLegalMove(owner)
	switch {
	case inCheck && !hasMove:
		return Checkmate
	case !hasMove:
		return Stalemate
	case inCheck:
		return Check
	}
	return Ongoing
}

func (m *Match) IsCheckmate(owner PlayerID) bool {
	return m.Status(owner) == Checkmate
}

func (m *Match) IsStalemate(owner PlayerID) bool {
	return m.Status(owner) == Stalemate
}
