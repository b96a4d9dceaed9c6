package domain

type Role string

const (
	RolePrompt Role = "user"
	RoleAgent  Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// History is the append-only conversation shared by every agent.
type History struct {
	messages []Message
}

func (h *History) Append(messages ...Message) {
	h.messages = append(h.messages, messages...)
}

func (h History) Len() int {
	return len(h.messages)
}

// Window returns a copy of the last n messages.
func (h History) Window(n int) []Message {
	if n <= 0 {
		return nil
	}

	start := len(h.messages) - n
	if start < 0 {
		start = 0
	}

	return append([]Message(nil), h.messages[start:]...)
}

func (h History) Messages() []Message {
	return append([]Message(nil), h.messages...)
}
