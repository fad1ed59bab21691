package taxtable

import "errors"

var (
	ErrTableNotFound        = errors.New("tax table version not found")
	ErrJurisdictionNotFound = errors.New("jurisdiction not configured in tax table")
)
