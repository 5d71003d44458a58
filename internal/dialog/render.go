package dialog

// Button is one pressable element of a keyboard. RequestContact asks the
// platform to attach the user's phone number instead of a payload.
type Button struct {
	Label          string `json:"label"`
	Payload        string `json:"payload,omitempty"`
	RequestContact bool   `json:"requestContact,omitempty"`
}

// Keyboard is rows of buttons.
type Keyboard [][]Button

// Render is one outbound instruction for the presentation collaborator.
type Render interface {
	isRender()
}

// ShowText displays a text message with an optional keyboard.
type ShowText struct {
	Text     string   `json:"text"`
	Keyboard Keyboard `json:"keyboard,omitempty"`
}

func (ShowText) isRender() {}

// ShowPhoto displays an image with a caption and an optional keyboard.
type ShowPhoto struct {
	URL      string   `json:"url"`
	Caption  string   `json:"caption"`
	Keyboard Keyboard `json:"keyboard,omitempty"`
}

func (ShowPhoto) isRender() {}

// EditText rewrites the message the pressed button was attached to. Only
// meaningful in response to a ButtonPress.
type EditText struct {
	Text     string   `json:"text"`
	Keyboard Keyboard `json:"keyboard,omitempty"`
}

func (EditText) isRender() {}

// UpdateKeyboard replaces just the keyboard of the message the pressed button
// was attached to, leaving its text or photo alone.
type UpdateKeyboard struct {
	Keyboard Keyboard `json:"keyboard"`
}

func (UpdateKeyboard) isRender() {}

// DeleteMessage removes the message the pressed button was attached to.
type DeleteMessage struct{}

func (DeleteMessage) isRender() {}

func row(buttons ...Button) []Button { return buttons }

func text(msg string) ShowText { return ShowText{Text: msg} }

func textKB(msg string, kb Keyboard) ShowText { return ShowText{Text: msg, Keyboard: kb} }
