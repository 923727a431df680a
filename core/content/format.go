package content

import (
	"fmt"
	"slices"
)

// Format normalizes caller input into a single sendable turn. It accepts a
// plain string, a Part, a *Content, or a slice of strings and/or Parts, and
// assigns the turn role from the part kinds: function response parts produce
// a function-role turn, everything else produces a user-role turn. A *Content
// keeps its role, defaulted to user when empty.
//
// Mixing function response parts with other part kinds in one message is
// rejected, as is an empty message or an unsupported fragment type. All
// failures wrap ErrBadMessage.
func Format(message any) (*Content, error) {
	var parts []Part

	switch m := message.(type) {
	case string:
		parts = []Part{Text(m)}
	case *Content:
		if m == nil || len(m.Parts) == 0 {
			return nil, fmt.Errorf("%w: message has no content", ErrBadMessage)
		}
		turn := &Content{Role: m.Role, Parts: slices.Clone(m.Parts)}
		if turn.Role == "" {
			turn.Role = RoleUser
		}
		return turn, nil
	case Part:
		parts = []Part{m}
	case []Part:
		parts = append(parts, m...)
	case []string:
		for _, s := range m {
			parts = append(parts, Text(s))
		}
	case []any:
		for _, fragment := range m {
			switch f := fragment.(type) {
			case string:
				parts = append(parts, Text(f))
			case Part:
				parts = append(parts, f)
			default:
				return nil, fmt.Errorf("%w: unsupported fragment type %T", ErrBadMessage, fragment)
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported message type %T", ErrBadMessage, message)
	}

	return assignRole(parts)
}

// assignRole splits parts by kind and derives the turn role. Function
// responses travel alone in a function-role turn; any other combination is a
// user-role turn.
func assignRole(parts []Part) (*Content, error) {
	var userParts, functionParts []Part
	for _, p := range parts {
		if p.FunctionResponse != nil {
			functionParts = append(functionParts, p)
		} else {
			userParts = append(userParts, p)
		}
	}

	switch {
	case len(userParts) > 0 && len(functionParts) > 0:
		return nil, fmt.Errorf("%w: function responses cannot be mixed with other parts", ErrBadMessage)
	case len(functionParts) > 0:
		return &Content{Role: RoleFunction, Parts: functionParts}, nil
	case len(userParts) > 0:
		return &Content{Role: RoleUser, Parts: userParts}, nil
	default:
		return nil, fmt.Errorf("%w: message has no content", ErrBadMessage)
	}
}
