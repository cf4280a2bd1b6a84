package domain

import "errors"

var (
	ErrEmptyCategories = errors.New("policy needs at least one category")
	ErrEmptyLevels     = errors.New("policy needs at least one level")
	ErrUnknownCheck    = errors.New("unknown check")
	ErrElementNotFound = errors.New("element not found in hierarchy")
	ErrInvalidCrop     = errors.New("crop rectangle outside image")
	ErrNilView         = errors.New("nil view in hierarchy")
)
