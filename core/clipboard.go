package core

// Clipboard abstracts the copy/paste target. The core ships an in-memory
// implementation; hosts may plug the system clipboard instead.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// memoryClipboard holds the single most recent copied string. It belongs
// to one buffer and is not part of the undo history.
type memoryClipboard struct {
	text string
}

// NewMemoryClipboard creates an in-memory clipboard.
func NewMemoryClipboard() Clipboard {
	return &memoryClipboard{}
}

func (c *memoryClipboard) Write(text string) error {
	c.text = text
	return nil
}

func (c *memoryClipboard) Read() (string, error) {
	return c.text, nil
}
