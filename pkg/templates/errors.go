package templates

import "errors"

var (
	// ErrTemplateNotFound is returned when a named template cannot be
	// loaded from the filesystem.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed is returned when a template fails to parse or execute.
	ErrRenderFailed = errors.New("template render failed")
)
