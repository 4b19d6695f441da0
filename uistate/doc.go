// Package uistate holds transient view state for the chat surface: scroll
// position, composer text, message selection, theme and sidebar visibility.
package uistate
