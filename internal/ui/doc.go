// Package ui renders a modal controller with Bubble Tea.
//
// Core pieces:
//   - View: modal content and the base page; Elm-style Init/Update/View
//   - Host: root tea.Model; draws the base view and, while open, the active
//     view in a bordered box over it
//   - KeyMap: esc dismisses (close or back), ←/backspace goes back while
//     there is history, ctrl+c quits
//   - TextView: renders content that is not a View (script text, JSON objects)
package ui
