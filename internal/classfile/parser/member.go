package parser

import (
	"fmt"

	"github.com/mabhi256/jvmch/internal/classfile/model"
	"github.com/mabhi256/jvmch/internal/classfile/registry"
)

/*
ParseMembers reads a count-prefixed field or method table

u2		count
[member]*

	u2		access_flags
	u2		name_index        -> Utf8
	u2		descriptor_index  -> Utf8
	u2		attributes_count
	[attribute]*
*/
func ParseMembers(reader *BinaryReader, pool *registry.ConstantPool, kind string) ([]model.MemberInfo, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s count: %w", kind, err)
	}

	members := make([]model.MemberInfo, 0, count)
	for i := range int(count) {
		member, err := parseMember(reader, pool)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s %d: %w", kind, i, err)
		}
		members = append(members, *member)
	}

	return members, nil
}

func parseMember(reader *BinaryReader, pool *registry.ConstantPool) (*model.MemberInfo, error) {
	access, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read access flags: %w", err)
	}

	nameIndex, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read name index: %w", err)
	}

	descriptorIndex, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor index: %w", err)
	}

	name, err := pool.Utf8(nameIndex)
	if err != nil {
		return nil, fmt.Errorf("bad name: %w", err)
	}

	descriptor, err := pool.Utf8(descriptorIndex)
	if err != nil {
		return nil, fmt.Errorf("bad descriptor: %w", err)
	}

	attributeCount, err := SkipAttributes(reader)
	if err != nil {
		return nil, err
	}

	return &model.MemberInfo{
		AccessFlags:     model.AccessFlags(access),
		NameIndex:       nameIndex,
		DescriptorIndex: descriptorIndex,
		Name:            name,
		Descriptor:      descriptor,
		AttributeCount:  attributeCount,
	}, nil
}

/*
SkipAttributes discards a count-prefixed attribute table

u2		attributes_count
[attribute]*

	u2		attribute_name_index
	u4		attribute_length
	[u1]*	info
*/
func SkipAttributes(reader *BinaryReader) (uint16, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return 0, fmt.Errorf("failed to read attributes count: %w", err)
	}

	for i := range int(count) {
		if _, err := reader.ReadU2(); err != nil {
			return 0, fmt.Errorf("failed to read name of attribute %d: %w", i, err)
		}

		length, err := reader.ReadU4()
		if err != nil {
			return 0, fmt.Errorf("failed to read length of attribute %d: %w", i, err)
		}

		if err := reader.Skip(int64(length)); err != nil {
			return 0, fmt.Errorf("failed to skip attribute %d: %w", i, err)
		}
	}

	return count, nil
}
