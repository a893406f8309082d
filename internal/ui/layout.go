package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// ModalMinWidth is the narrowest overlay or dialog.
	ModalMinWidth = 44
)

// Vertical space taken by everything on the main screen except card rows:
// header, command bar, banner, tab bar, list box borders and the new-card box.
const MainChromeRows = 10

// FormBoxHeight is the height of the new-card box including borders.
const FormBoxHeight = 4

// Input limits.
const (
	NameCharLimit = 64
	CodeCharLimit = 256
	InputWidth    = 32
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI pulls the store snapshot.
	DefaultUIInterval = time.Second

	// DefaultStoreTimeout bounds each card store call.
	DefaultStoreTimeout = 10 * time.Second
)
