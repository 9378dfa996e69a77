package catalog

import "errors"

var (
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrNoCatalog          = errors.New("catalog does not exist")
	ErrRunNotFound        = errors.New("run not found")
	ErrAmbiguousRun       = errors.New("run id prefix is ambiguous")
	ErrIncompatibleSchema = errors.New("incompatible fixture schema")
)
