package compiler

import "errors"

var (
	// ErrSkillsDirNotFound is returned when the document source directory does not exist.
	ErrSkillsDirNotFound = errors.New("skills directory not found")
	// ErrUnknownTarget is returned when a requested target is not declared.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrInvalidTarget is returned when target declarations fail validation.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrDocumentNotFound is returned by a DocumentSource for an absent document.
	ErrDocumentNotFound = errors.New("document not found")
)
