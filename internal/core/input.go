package core

// Intent is a device-independent request to change the active piece.
// Keyboard and gamepad sources both reduce to this small set.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentSoftDropOn
	IntentSoftDropOff
	IntentRotateCW
	IntentRotateCCW
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentSoftDropOn:
		return "SoftDropOn"
	case IntentSoftDropOff:
		return "SoftDropOff"
	case IntentRotateCW:
		return "RotateCW"
	case IntentRotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}
