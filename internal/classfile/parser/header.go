package parser

import (
	"fmt"

	"github.com/mabhi256/jvmch/internal/classfile/model"
)

/*
*	ParseHeader reads everything in front of the constant pool entries
*
*	u4		magic (0xCAFEBABE)
*	u2		minor_version
*	u2		major_version
*	u2		constant_pool_count
 */
func ParseHeader(reader *BinaryReader) (*model.ClassHeader, error) {
	magic, err := reader.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("unable to read magic: %w", err)
	}

	if magic != model.ClassMagic {
		return nil, fmt.Errorf("%w: 0x%08X", model.ErrBadMagic, magic)
	}

	minor, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read minor version: %w", err)
	}

	major, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read major version: %w", err)
	}

	poolCount, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}

	return &model.ClassHeader{
		Magic:        magic,
		MinorVersion: minor,
		MajorVersion: major,
		PoolCount:    poolCount,
	}, nil
}

/*
*	ParseClassInfo reads the part between the constant pool and the fields
*
*	u2		access_flags
*	u2		this_class
*	u2		super_class
*	u2		interfaces_count
*	[u2]*	interfaces
 */
func ParseClassInfo(reader *BinaryReader, header *model.ClassHeader) error {
	access, err := reader.ReadU2()
	if err != nil {
		return fmt.Errorf("failed to read access flags: %w", err)
	}
	header.AccessFlags = model.AccessFlags(access)

	if header.ThisClass, err = reader.ReadU2(); err != nil {
		return fmt.Errorf("failed to read this_class: %w", err)
	}

	if header.SuperClass, err = reader.ReadU2(); err != nil {
		return fmt.Errorf("failed to read super_class: %w", err)
	}

	interfaceCount, err := reader.ReadU2()
	if err != nil {
		return fmt.Errorf("failed to read interfaces count: %w", err)
	}

	header.Interfaces = make([]uint16, 0, interfaceCount)
	for i := range int(interfaceCount) {
		iface, err := reader.ReadU2()
		if err != nil {
			return fmt.Errorf("failed to read interface %d: %w", i, err)
		}
		header.Interfaces = append(header.Interfaces, iface)
	}

	return nil
}
