// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant   = errors.New("compose: unknown component variant")
	ErrUnknownField     = errors.New("compose: unknown component field")
	ErrIndexOutOfRange  = errors.New("compose: component index out of range")
	ErrDuplicateID      = errors.New("compose: component id already in list")
	ErrProductNotFound  = errors.New("compose: product not found")
	ErrTemplateNotFound = errors.New("compose: template not found")
	ErrEmptyPrompt      = errors.New("compose: prompt is required")
	ErrPageRequired     = errors.New("compose: target page id is required")
	ErrTitleRequired    = errors.New("compose: page title is required")
	ErrInvalidSlug      = errors.New("compose: slug must match [a-z0-9-]+")
	ErrInvalidLoadMode  = errors.New("compose: load mode must be replace or append")
	ErrStoreMissing     = errors.New("compose: block store is not configured")
	ErrPagesMissing     = errors.New("compose: page store is not configured")

	ErrResaveUnsupported = errors.New("compose: block store cannot clear a page that already has blocks")
)

// PartialApplyError reports a template application that stopped midway.
// Blocks 0..Applied-1 were persisted; FailedAt and everything after it
// were not. Nothing is rolled back.
type PartialApplyError struct {
	PageID   string
	Total    int
	Applied  int
	FailedAt int
	Err      error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("compose: apply to page %s stopped at block %d of %d (%d persisted): %v",
		e.PageID, e.FailedAt, e.Total, e.Applied, e.Err)
}

func (e *PartialApplyError) Unwrap() error { return e.Err }
