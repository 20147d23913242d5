package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/gorilla/css/scanner"

	"bme-guide/pkg/lang"
	"bme-guide/pkg/validator"
)

//go:embed theme.yaml
var defaultDefinition []byte

var ErrInvalidToken = errors.New("invalid style token")

type Color struct {
	Name  string `yaml:"name" validate:"required,slug"`
	Value string `yaml:"value" validate:"required"`
}

// Tokens are the global style values injected once into every page.
type Tokens struct {
	Name       string  `yaml:"name" validate:"required,slug"`
	Language   string  `yaml:"language" validate:"required"`
	Direction  string  `yaml:"direction" validate:"omitempty,oneof=ltr rtl"`
	FontFamily string  `yaml:"font_family" validate:"required"`
	Palette    []Color `yaml:"palette" validate:"dive"`
}

// Default returns the tokens bundled with the binary.
func Default() (Tokens, error) {
	return Parse(defaultDefinition)
}

// Parse decodes a YAML token definition and validates it. An empty direction
// is derived from the language.
func Parse(data []byte) (Tokens, error) {
	var tokens Tokens
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("decode theme: %w", err)
	}

	if err := tokens.normalize(); err != nil {
		return Tokens{}, err
	}

	return tokens, nil
}

// Override returns a copy of t with the provided font family and palette
// values applied. Palette keys that are not already defined are appended in
// the order given by names.
func (t Tokens) Override(fontFamily string, colors map[string]string, names []string) (Tokens, error) {
	out := t
	out.Palette = append([]Color(nil), t.Palette...)

	if trimmed := strings.TrimSpace(fontFamily); trimmed != "" {
		out.FontFamily = trimmed
	}

	for _, name := range names {
		value, ok := colors[name]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		replaced := false
		for i := range out.Palette {
			if out.Palette[i].Name == name {
				out.Palette[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			out.Palette = append(out.Palette, Color{Name: name, Value: value})
		}
	}

	if err := out.normalize(); err != nil {
		return Tokens{}, err
	}
	return out, nil
}

func (t *Tokens) normalize() error {
	language, err := lang.Normalize(t.Language)
	if err != nil {
		return fmt.Errorf("theme language: %w", err)
	}
	t.Language = language

	t.Direction = strings.ToLower(strings.TrimSpace(t.Direction))
	if t.Direction == "" {
		t.Direction = lang.Direction(language)
	}

	t.FontFamily = strings.TrimSpace(t.FontFamily)

	if err := validator.Validate(t); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if err := checkFontFamily(t.FontFamily); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(t.Palette))
	for _, color := range t.Palette {
		if _, dup := seen[color.Name]; dup {
			return fmt.Errorf("%w: duplicate color %q", ErrInvalidToken, color.Name)
		}
		seen[color.Name] = struct{}{}

		if err := checkColor(color.Value); err != nil {
			return fmt.Errorf("color %q: %w", color.Name, err)
		}
	}

	return nil
}

// checkColor accepts a single hex color or a named color.
func checkColor(value string) error {
	tokens, err := significantTokens(value)
	if err != nil {
		return err
	}
	if len(tokens) != 1 {
		return fmt.Errorf("%w: %q is not a single color", ErrInvalidToken, value)
	}

	token := tokens[0]
	switch token.Type {
	case scanner.TokenHash:
		digits := strings.TrimPrefix(token.Value, "#")
		switch len(digits) {
		case 3, 4, 6, 8:
		default:
			return fmt.Errorf("%w: %q has %d hex digits", ErrInvalidToken, value, len(digits))
		}
		for _, r := range digits {
			if !isHex(r) {
				return fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidToken, value)
			}
		}
		return nil
	case scanner.TokenIdent:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a color", ErrInvalidToken, value)
	}
}

// checkFontFamily accepts a comma separated list of quoted names and
// identifiers.
func checkFontFamily(value string) error {
	tokens, err := significantTokens(value)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty font family", ErrInvalidToken)
	}

	expectName := true
	for _, token := range tokens {
		switch {
		case token.Type == scanner.TokenString:
			if strings.ContainsAny(token.Value, "<>{};\\") {
				return fmt.Errorf("%w: unsafe font name %s", ErrInvalidToken, token.Value)
			}
			expectName = false
		case token.Type == scanner.TokenIdent:
			// Multi word families may be written unquoted.
			expectName = false
		case token.Type == scanner.TokenChar && token.Value == ",":
			if expectName {
				return fmt.Errorf("%w: empty entry in font family %q", ErrInvalidToken, value)
			}
			expectName = true
		default:
			return fmt.Errorf("%w: unexpected %q in font family", ErrInvalidToken, token.Value)
		}
	}
	if expectName {
		return fmt.Errorf("%w: trailing comma in font family %q", ErrInvalidToken, value)
	}

	return nil
}

func significantTokens(value string) ([]*scanner.Token, error) {
	s := scanner.New(value)
	var tokens []*scanner.Token
	for {
		token := s.Next()
		switch token.Type {
		case scanner.TokenEOF:
			return tokens, nil
		case scanner.TokenError:
			return nil, fmt.Errorf("%w: %s", ErrInvalidToken, token.Value)
		case scanner.TokenS:
			continue
		case scanner.TokenComment:
			return nil, fmt.Errorf("%w: comments are not allowed", ErrInvalidToken)
		}
		tokens = append(tokens, token)
	}
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
