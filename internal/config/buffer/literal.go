package buffer

import "strings"

// LiteralBuffer renders its whole content.
type LiteralBuffer struct {
	store
}

// NewLiteral creates a LiteralBuffer holding value. The whole value is
// validated at once.
func NewLiteral(value string, validate Validator, opts ...Option) (*LiteralBuffer, error) {
	b := &LiteralBuffer{}
	b.init(checkWhole, validate, opts)
	if err := b.set(value); err != nil {
		return nil, err
	}
	return b, nil
}

// Kind returns KindLiteral.
func (b *LiteralBuffer) Kind() Kind {
	return KindLiteral
}

// Render returns the full content joined by newlines.
func (b *LiteralBuffer) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshLocked()
	return strings.Join(b.lines, "\n")
}

func (*LiteralBuffer) sealed() {}
