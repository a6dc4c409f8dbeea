package model

import (
	"errors"
	"fmt"
)

var (
	ErrBadMagic  = errors.New("not a class file: bad magic number")
	ErrTruncated = errors.New("truncated class file")
)

// UnknownTagError reports a constant pool tag outside the JVMS tag set
type UnknownTagError struct {
	Tag    uint8
	Index  int   // pool slot being decoded
	Offset int64 // byte offset of the tag
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown constant pool tag %d at index %d (offset %d)", e.Tag, e.Index, e.Offset)
}

// InvalidIndexError reports a pool reference that does not resolve to a Utf8 entry
type InvalidIndexError struct {
	Index uint16
	Count uint16
	Tag   ConstantTag
}

func (e *InvalidIndexError) Error() string {
	if e.Index == 0 || e.Index >= e.Count {
		return fmt.Sprintf("constant pool index %d out of range [1, %d)", e.Index, e.Count)
	}
	return fmt.Sprintf("constant pool index %d is %s, expected Utf8", e.Index, e.Tag)
}
