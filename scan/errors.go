package scan

import (
	"github.com/ava12/picoscan"
	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/source"
)

// Error codes used by scan engines:
const (
	// UnclosedContainerError indicates that the end pattern of a container rule was not found.
	// Returned only with UnclosedError policy. Error message contains rule id and start offset.
	UnclosedContainerError = picoscan.ScanErrors + iota

	// NestingTooDeepError indicates that container nesting exceeds configured limit.
	NestingTooDeepError

	// ContainerInFlatError indicates that a container rule is passed to the flat engine.
	ContainerInFlatError
)

func unclosedContainerError(r *rules.Rule, pos source.Pos) *picoscan.Error {
	return picoscan.FormatErrorPos(pos, UnclosedContainerError, "unclosed container %q started at offset %d", r.ID, pos.Pos())
}

func nestingTooDeepError(r *rules.Rule, pos source.Pos, limit int) *picoscan.Error {
	return picoscan.FormatErrorPos(pos, NestingTooDeepError, "container %q exceeds nesting limit of %d", r.ID, limit)
}

func containerInFlatError(r *rules.Rule) *picoscan.Error {
	return picoscan.FormatError(ContainerInFlatError, "container rule %q cannot be used by flat engine", r.ID)
}
