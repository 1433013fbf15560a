package views

import (
	"hybridctl/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height  int
	MouseX, MouseY int

	// Component States
	AnimCursor  float64
	SpinnerView string
	ChartView   string
	ScrollBack  int
	Focus       int
	Cursor      int
	FilterFocus bool
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}

// Config form field order; the controller walks these indices.
const (
	FieldVerbose = iota
	FieldForceExt4
	FieldEnableNuke
	FieldDisableUmount
	FieldModuleDir
	FieldTempDir
	FieldMountSource
	FieldPartitions
	FieldCount
)
