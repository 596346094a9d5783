package automaton

import "errors"

var (
	// ErrInvalidAutomaton indicates a Definition that does not describe a valid automaton.
	ErrInvalidAutomaton = errors.New("automaton: invalid automaton definition")
	// ErrStateBudget indicates that subset construction exceeded its state cap.
	ErrStateBudget = errors.New("automaton: state budget exceeded")
)

func mustAutomaton(a *Automaton) {
	if a == nil {
		panic("automaton: nil automaton")
	}
}
