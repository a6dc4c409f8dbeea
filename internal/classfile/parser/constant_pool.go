package parser

import (
	"fmt"

	"github.com/mabhi256/jvmch/internal/classfile/model"
	"github.com/mabhi256/jvmch/internal/classfile/registry"
)

/*
ParseConstantPool decodes the entries of a constant pool whose declared
constant_pool_count has already been read.

u1		tag
[...]	tag specific body

	Utf8                u2 length, [u1]* bytes
	Integer, Float      u4
	Long, Double        u8 (the following index is unusable)
	Class, String,
	MethodType, Module,
	Package             u2 index
	Fieldref, Methodref,
	InterfaceMethodref,
	NameAndType,
	Dynamic,
	InvokeDynamic       u2 index, u2 index
	MethodHandle        u1 reference_kind, u2 reference_index
*/
func ParseConstantPool(reader *BinaryReader, count uint16) (*registry.ConstantPool, error) {
	pool := registry.NewConstantPool(count)

	for index := 1; index < int(count); {
		offset := reader.BytesRead()
		rawTag, err := reader.ReadU1()
		if err != nil {
			return nil, fmt.Errorf("failed to read tag of constant #%d: %w", index, err)
		}

		tag := model.ConstantTag(rawTag)
		switch tag.Kind() {
		case model.KindText:
			text, err := reader.ReadUtf8String()
			if err != nil {
				return nil, fmt.Errorf("failed to read Utf8 constant #%d: %w", index, err)
			}
			pool.AddUtf8(uint16(index), text)

		case model.KindNumeric4, model.KindNumeric8,
			model.KindSymbolicRef1, model.KindSymbolicRef2, model.KindMethodHandle:
			if err := reader.Skip(int64(tag.Size())); err != nil {
				return nil, fmt.Errorf("failed to read %s constant #%d: %w", tag, index, err)
			}
			pool.SetTag(uint16(index), tag)

		case model.KindUnknown:
			return nil, &model.UnknownTagError{Tag: rawTag, Index: index, Offset: offset}
		}

		if tag.Slots() == 2 {
			pool.SetTag(uint16(index+1), model.CONSTANT_Unusable)
		}
		index += tag.Slots()
	}

	return pool, nil
}
