// Package ui contains the Bubble Tea program that renders the tab board.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own input, mouse gestures,
// rendering, and board state.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, mouse events,
//     backend snapshots, action results).
//   - The split-choice modal and the filter input intercept key messages
//     before the board bindings run.
//
// State ownership:
//   - Card grid state (cards, cursor, viewport, filter) lives in
//     internal/ui/state.Board.
//   - The window store is provided by internal/state and kept in sync by
//     the dispatcher, which also reassigns a vanished active window and
//     prunes dead tabs out of the working selection.
//   - The three-set selection and the staged merge protocol live in
//     internal/merge.Selection; the model only sequences them.
//
// Host interactions:
//   - A backend.Watcher turns bridge notifications into snapshot events;
//     Update waits for those events and hands them to applyBackendEvent.
//   - Merge, split and close commands run as tea.Cmd values built by
//     internal/merge and executed through the internal/ui/command bus; the
//     busy flag refuses a second command while one is in flight.
//
// Rendering doubles as layout: View records the rectangle of every window
// row, card, ✕ control, footer button and modal item, and mouse.go
// hit-tests against exactly those rectangles, so the marquee and click
// routing can never drift from what is on screen.
package ui
