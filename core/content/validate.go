package content

import "fmt"

// validPriorRoles maps a turn role to the roles allowed to precede it.
var validPriorRoles = map[Role][]Role{
	RoleUser:     {RoleModel},
	RoleFunction: {RoleModel},
	RoleModel:    {RoleUser, RoleFunction},
	RoleSystem:   {},
}

// validPartsPerRole maps a turn role to the part kinds it may carry.
var validPartsPerRole = map[Role][]string{
	RoleUser:     {"text", "inlineData"},
	RoleFunction: {"functionResponse"},
	RoleModel:    {"text", "functionCall"},
	RoleSystem:   {"text"},
}

// ValidateHistory checks that a conversation history is well formed: the
// first turn is authored by the user, every turn has at least one part, part
// kinds match the turn role, and adjacent roles alternate legally (the model
// answers the user or a function result, the user and function results only
// follow the model).
//
// An empty history is valid. All failures wrap ErrInvalidHistory.
func ValidateHistory(history []*Content) error {
	if len(history) == 0 {
		return nil
	}

	prevRole := Role("")
	for i, turn := range history {
		if turn == nil {
			return fmt.Errorf("%w: content at index %d is nil", ErrInvalidHistory, i)
		}
		role := turn.Role
		if role == "" {
			role = RoleUser
		}
		if _, ok := validPriorRoles[role]; !ok {
			return fmt.Errorf("%w: unknown role %q at index %d", ErrInvalidHistory, role, i)
		}
		if i == 0 && role != RoleUser {
			return fmt.Errorf("%w: first content must be from the user, got role %q", ErrInvalidHistory, role)
		}
		if len(turn.Parts) == 0 {
			return fmt.Errorf("%w: content at index %d has no parts", ErrInvalidHistory, i)
		}
		for _, p := range turn.Parts {
			if err := checkPartKind(role, p); err != nil {
				return err
			}
		}
		if i > 0 && !roleMayFollow(role, prevRole) {
			return fmt.Errorf("%w: role %q at index %d cannot follow role %q", ErrInvalidHistory, role, i, prevRole)
		}
		prevRole = role
	}
	return nil
}

func checkPartKind(role Role, p Part) error {
	kind := partKind(p)
	for _, allowed := range validPartsPerRole[role] {
		if kind == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: content with role %q cannot contain a %s part", ErrInvalidHistory, role, kind)
}

func roleMayFollow(role, prev Role) bool {
	for _, allowed := range validPriorRoles[role] {
		if prev == allowed {
			return true
		}
	}
	return false
}

// partKind names the populated field of a part. A part with no structured
// field set is a text part.
func partKind(p Part) string {
	switch {
	case p.InlineData != nil:
		return "inlineData"
	case p.FunctionCall != nil:
		return "functionCall"
	case p.FunctionResponse != nil:
		return "functionResponse"
	default:
		return "text"
	}
}
