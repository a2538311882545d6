package directive

import "errors"

var (
	// ErrDuplicateDefinition indicates an attempt to register a directive name twice.
	ErrDuplicateDefinition = errors.New("directive: duplicate definition")
	// ErrInvalidDefinition occurs when a definition fails schema validation.
	ErrInvalidDefinition = errors.New("directive: invalid definition")
	// ErrUnknownDirective indicates the renderer was asked for a name the registry does not hold.
	ErrUnknownDirective = errors.New("directive: unknown directive")
)
