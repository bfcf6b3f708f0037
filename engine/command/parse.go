package command

import "strings"

// Parse parses a command string. Tokens are separated by spaces; double
// quotes group text containing spaces into one token. Malformed tokens
// are dropped, the remaining tokens are still honoured.
func Parse(s string) *Command {
	cmd := New()
	cmd.Parse(s)
	return cmd
}

// Parse parses a command string and merges the result into cmd.
func (cmd *Command) Parse(s string) {
	for _, token := range splitQuoted(s, ' ') {
		if len(token) < 2 {
			continue
		}
		body := token[1:]
		switch token[0] {
		case '#':
			if isIdentifier(body) {
				cmd.ID = body
			}
		case '.':
			for _, cls := range strings.Split(body, ".") {
				if isIdentifier(cls) {
					cmd.AddClass(cls)
				}
			}
		case ':':
			cmd.Title = unquote(body)
		case '+':
			key, value, _ := strings.Cut(body, "=")
			if isIdentifier(key) {
				cmd.SetAttribute(key, unquote(value))
			}
		case '$':
			if call, ok := parseCall(body); ok {
				cmd.Generator = &call
			}
		case '&':
			if call, ok := parseCall(body); ok {
				cmd.Modifiers = append(cmd.Modifiers, call)
			}
		case '>':
			if len(token) <= 4 {
				break
			}
			prop, value, _ := strings.Cut(body, ":")
			if value != "" && isIdentifier(prop) {
				cmd.CSS().Add(prop, unquote(value))
			}
		case '%':
			if isIdentifier(body) {
				cmd.Refs = append(cmd.Refs, body)
			}
		default:
			tracer().Debugf("command: ignoring token %q", token)
		}
	}
}

// parseCall parses `name[:arg,arg,...]`.
func parseCall(s string) (Call, bool) {
	name, args, _ := strings.Cut(s, ":")
	if !isIdentifier(name) {
		return Call{}, false
	}
	call := Call{Name: name}
	for _, arg := range splitQuoted(args, ',') {
		call.Args = append(call.Args, unquote(arg))
	}
	return call, true
}

// splitQuoted splits s at every sep outside of double quotes. Quotes are
// kept in the resulting tokens, empty tokens are dropped.
func splitQuoted(s string, sep byte) []string {
	var tokens []string
	start, quoted := 0, false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && quoted && i+1 < len(s):
			i++
		case s[i] == '"':
			quoted = !quoted
		case s[i] == sep && !quoted:
			if i > start {
				tokens = append(tokens, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// unquote removes the double quotes from a token and resolves escaped
// quotes and backslashes within.
func unquote(s string) string {
	if !strings.ContainsRune(s, '"') {
		return s
	}
	var b strings.Builder
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && quoted && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == '"':
			quoted = !quoted
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isIdentifier checks that s is a non-empty sequence of ASCII letters,
// digits, '-' and '_'.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// IsIdentifier is a predicate: is s a valid name for ids, classes,
// functions and command blocks?
func IsIdentifier(s string) bool {
	return isIdentifier(s)
}
