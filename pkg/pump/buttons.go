package pump

// Button identifies one of the pump's front-panel buttons.
type Button string

const (
	ButtonRunStop Button = "RunStop"
	ButtonUp      Button = "UP"
	ButtonDown    Button = "DOWN"
	ButtonEdit    Button = "EDIT"
	ButtonMenu    Button = "MENU"
)

// muxChannels maps each button to the (mux1, mux2) channel pair the
// controller board decodes into a simulated press.
var muxChannels = map[Button][2]byte{
	ButtonRunStop: {0, 0},
	ButtonUp:      {1, 0},
	ButtonDown:    {1, 1},
	ButtonEdit:    {2, 1},
	ButtonMenu:    {2, 0},
}

// buttonOrder keeps error messages and help output deterministic.
var buttonOrder = []Button{ButtonRunStop, ButtonUp, ButtonDown, ButtonEdit, ButtonMenu}

// Buttons returns the valid button labels in display order.
func Buttons() []Button {
	out := make([]Button, len(buttonOrder))
	copy(out, buttonOrder)
	return out
}
