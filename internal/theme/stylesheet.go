package theme

import (
	"crypto/sha256"
	"encoding/base64"
	"html/template"
	"strings"
	"sync"
)

// Stylesheet holds the global style block. It is registered once at bootstrap
// and shared read-only by every render afterwards.
type Stylesheet struct {
	once   sync.Once
	tokens Tokens
	css    template.CSS
	hash   string
}

// Register builds the style block from tokens on first call. Later calls are
// no-ops and return the block built by the first one.
func (s *Stylesheet) Register(tokens Tokens) template.CSS {
	s.once.Do(func() {
		s.tokens = tokens
		s.css = template.CSS(buildCSS(tokens))
		sum := sha256.Sum256([]byte(s.css))
		s.hash = "sha256-" + base64.StdEncoding.EncodeToString(sum[:])
	})
	return s.css
}

// CSS returns the registered style block, empty before Register.
func (s *Stylesheet) CSS() template.CSS {
	return s.css
}

// Hash returns the CSP source expression for the registered style block.
func (s *Stylesheet) Hash() string {
	return s.hash
}

// Tokens returns the tokens the block was built from.
func (s *Stylesheet) Tokens() Tokens {
	return s.tokens
}

func buildCSS(tokens Tokens) string {
	var b strings.Builder

	b.WriteString("\n:root {\n")
	for _, color := range tokens.Palette {
		b.WriteString("  --")
		b.WriteString(color.Name)
		b.WriteString(": ")
		b.WriteString(color.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")

	b.WriteString("body {\n  direction: ")
	b.WriteString(tokens.Direction)
	b.WriteString(";\n  font-family: ")
	b.WriteString(tokens.FontFamily)
	b.WriteString(";\n}\n")

	for _, color := range tokens.Palette {
		b.WriteString(".bg-")
		b.WriteString(color.Name)
		b.WriteString(" { background-color: var(--")
		b.WriteString(color.Name)
		b.WriteString("); }\n")
		b.WriteString(".text-")
		b.WriteString(color.Name)
		b.WriteString(" { color: var(--")
		b.WriteString(color.Name)
		b.WriteString("); }\n")
	}

	return b.String()
}
