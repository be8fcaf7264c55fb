package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrTextConversion = pipeline.ErrTextConversion
	ErrDocumentRender = errors.New("document rendering failed")
	ErrImageEmbed     = errors.New("embedding local images failed")
	ErrInvalidOption  = errors.New("invalid converter option")
	ErrUnknownEngine  = pipeline.ErrUnknownEngine
	ErrInternal       = errors.New("internal error")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidTemplate  = errors.New("invalid document template")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
