package board

import (
	"fmt"
	"strings"
)

// Action is a direction the player can slide the tiles in.
type Action uint8

const (
	Left Action = iota
	Right
	Up
	Down

	NumActions = 4
)

// Actions lists every action in the order SimulateMoves reports them.
var Actions = [NumActions]Action{Left, Right, Up, Down}

var actionNames = [NumActions]string{"LEFT", "RIGHT", "UP", "DOWN"}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// Valid reports whether a is one of the four directions.
func (a Action) Valid() bool {
	return a < NumActions
}

// ParseAction accepts a direction name (any case), its first letter, or
// one of the w/a/s/d keys.
func ParseAction(str string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "left", "l", "a":
		return Left, nil
	case "right", "r", "d":
		return Right, nil
	case "up", "u", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, str)
}

// ValidMove pairs an action with the state it produces. The state always
// differs from the one the move was generated from.
type ValidMove struct {
	Action Action
	State  State
}

func (m ValidMove) String() string {
	return fmt.Sprintf("<%v %016x>", m.Action, uint64(m.State))
}
