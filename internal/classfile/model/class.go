package model

// ClassHeader holds the fixed part of a class file around the constant pool
type ClassHeader struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
	PoolCount    uint16 // declared constant_pool_count, valid indexes are 1..PoolCount-1
	AccessFlags  AccessFlags
	ThisClass    uint16 // -> CONSTANT_Class
	SuperClass   uint16 // -> CONSTANT_Class, 0 for java/lang/Object
	Interfaces   []uint16
}

// MemberInfo is a field_info or method_info with its attributes skipped
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      string
	AttributeCount  uint16
}

// MethodDescriptor identifies a method by name and signature
type MethodDescriptor struct {
	Name       string
	Descriptor string
}

func (m MethodDescriptor) String() string {
	return m.Name + m.Descriptor
}

func (m *MemberInfo) MethodDescriptor() MethodDescriptor {
	return MethodDescriptor{Name: m.Name, Descriptor: m.Descriptor}
}

// IsEntryPoint reports whether the member is public static void main(String[])
func (m *MemberInfo) IsEntryPoint() bool {
	return m.AccessFlags.IsPublic() &&
		m.AccessFlags.IsStatic() &&
		m.Name == MainMethodName &&
		m.Descriptor == MainMethodDescriptor
}

type ClassFile struct {
	Header         ClassHeader
	Fields         []MemberInfo
	Methods        []MemberInfo
	AttributeCount uint16
	Size           int64 // bytes consumed
}

// EntryPoints returns the methods matching the entry point predicate in table order
func (c *ClassFile) EntryPoints() []MethodDescriptor {
	var found []MethodDescriptor
	for i := range c.Methods {
		if c.Methods[i].IsEntryPoint() {
			found = append(found, c.Methods[i].MethodDescriptor())
		}
	}
	return found
}
