package parser

import (
	"bytes"
	"fmt"

	"github.com/mabhi256/jvmch/internal/classfile/model"
)

/*
*	Class file format described here
*	https://docs.oracle.com/javase/specs/jvms/se21/html/jvms-4.html#jvms-4.1
*
*	Only the parts needed to walk the file and evaluate methods are decoded.
 */

// ParseClass walks a whole class file. Any error means the data is not a
// parseable class; callers scanning archives treat that entry as non-matching.
func ParseClass(data []byte) (*model.ClassFile, error) {
	reader := NewBinaryReader(bytes.NewReader(data))

	header, err := ParseHeader(reader)
	if err != nil {
		return nil, err
	}

	pool, err := ParseConstantPool(reader, header.PoolCount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse constant pool: %w", err)
	}

	if err := ParseClassInfo(reader, header); err != nil {
		return nil, err
	}

	fields, err := ParseMembers(reader, pool, "field")
	if err != nil {
		return nil, err
	}

	methods, err := ParseMembers(reader, pool, "method")
	if err != nil {
		return nil, err
	}

	attributeCount, err := SkipAttributes(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to skip class attributes: %w", err)
	}

	return &model.ClassFile{
		Header:         *header,
		Fields:         fields,
		Methods:        methods,
		AttributeCount: attributeCount,
		Size:           reader.BytesRead(),
	}, nil
}

// FindEntryPoints returns every public static void main(String[]) in method table order
func FindEntryPoints(data []byte) ([]model.MethodDescriptor, error) {
	class, err := ParseClass(data)
	if err != nil {
		return nil, err
	}
	return class.EntryPoints(), nil
}
