package dialog

// Profile carries the optional identity fields the transport knows about the
// sender. Used to fill the user record on first contact.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
}

// Event is one typed unit of user input delivered by the transport.
type Event interface {
	UserID() int64
}

// TextInput is a free-form text message.
type TextInput struct {
	ChatID  int64
	Text    string
	Profile Profile
}

func (e TextInput) UserID() int64 { return e.ChatID }

// ButtonPress is a structured button press carrying an opaque payload string.
// Payloads round-trip through the transport unchanged; see ParseAction for
// the vocabulary.
type ButtonPress struct {
	ChatID  int64
	Payload string
}

func (e ButtonPress) UserID() int64 { return e.ChatID }

// ContactShare is a shared phone number.
type ContactShare struct {
	ChatID int64
	Phone  string
}

func (e ContactShare) UserID() int64 { return e.ChatID }
