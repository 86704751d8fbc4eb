// Package prompt asks yes/no questions.
//
// Confirmer is the seam between the installer and the user. Three
// implementations are provided:
//
//   - Terminal renders an inline bubbletea prompt with two buttons. Arrow
//     keys, h/l and tab move the selection, y and n answer directly, enter
//     accepts the highlighted answer and ctrl+c or esc aborts.
//   - Defaults answers every question with its default, for
//     --no-interaction runs.
//   - Scripted answers from a fixed table, for tests.
package prompt
