package command

import "strings"

// Tokenize splits a command line on spaces. A double quote toggles quoted
// mode, in which spaces are kept; a closing quote always ends the current
// token, even an empty one. There is no escaping and no nesting. An
// unterminated quote keeps whatever was accumulated as the last token.
func Tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range line {
		switch {
		case r == '"' && quoted:
			tokens = append(tokens, cur.String())
			cur.Reset()
			quoted = false
		case r == '"':
			quoted = true
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
