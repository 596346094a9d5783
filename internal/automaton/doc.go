// Package automaton implements finite automata over symbolic alphabets and the
// pure transformation stages applied to them.
//
// What:
//
//   - Automaton is an immutable value: states are integer indices into an arena,
//     transitions are keyed by (state, symbol), epsilon moves are kept apart.
//   - Builder creates automata; FromDefinition validates hand-entered ones.
//   - Determinize, RemoveEpsilon, Minimize, Complete and Canonicalize each return
//     a new automaton and never modify their input.
//   - Intersect, Union, Complement, Reverse and Equivalent work on languages.
//
// Complexity:
//
//   - Determinize: O(2^n) states in the worst case; DeterminizeLimit bounds it.
//   - Minimize:    O(k·n·log n) for n states and k symbols (Hopcroft).
//   - Complete, Canonicalize: O(k·n + m) for m transitions.
//
// Errors:
//
//   - ErrInvalidAutomaton: a Definition references undeclared states or symbols,
//     lacks a start state, or is non-functional while declared deterministic.
//   - ErrStateBudget: subset construction would exceed the caller's state cap.
//
// Stages do not return errors. Passing a nil automaton is a programming error
// and panics.
package automaton
