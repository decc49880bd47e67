// Package ui implements an interactive terminal viewer using bubbletea's Elm architecture.
//
// The viewer shows one user's weekly exercise plan in two views:
//  1. [TaskListView] : The current weekly task list with completion marks, with a
//     summary line showing the goal and completion percentage
//  2. [ProgressListView] : The archived progress history, one entry per past week
//
// The [Model] implements bubbletea's standard Init/Update/View pattern and loads
// its data once at startup through the tracking concept; it is a read-only view.
//
// Keyboard navigation uses vim-style bindings (j/k, tab to switch views, q to
// quit) with contextual help displayed via charmbracelet/bubbles/help.
package ui
