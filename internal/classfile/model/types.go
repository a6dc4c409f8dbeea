package model

import "fmt"

/*
*	Class file layout, see JVMS chapter 4
*	https://docs.oracle.com/javase/specs/jvms/se21/html/jvms-4.html
 */

const ClassMagic uint32 = 0xCAFEBABE

// The entry point every launcher looks for
const (
	MainMethodName       = "main"
	MainMethodDescriptor = "([Ljava/lang/String;)V"
)

type ConstantTag uint8

const (
	CONSTANT_Utf8               ConstantTag = 1
	CONSTANT_Integer            ConstantTag = 3
	CONSTANT_Float              ConstantTag = 4
	CONSTANT_Long               ConstantTag = 5
	CONSTANT_Double             ConstantTag = 6
	CONSTANT_Class              ConstantTag = 7
	CONSTANT_String             ConstantTag = 8
	CONSTANT_Fieldref           ConstantTag = 9
	CONSTANT_Methodref          ConstantTag = 10
	CONSTANT_InterfaceMethodref ConstantTag = 11
	CONSTANT_NameAndType        ConstantTag = 12
	CONSTANT_MethodHandle       ConstantTag = 15
	CONSTANT_MethodType         ConstantTag = 16
	CONSTANT_Dynamic            ConstantTag = 17
	CONSTANT_InvokeDynamic      ConstantTag = 18
	CONSTANT_Module             ConstantTag = 19
	CONSTANT_Package            ConstantTag = 20

	// Marks the slot following a Long or Double; never a real tag in the file
	CONSTANT_Unusable ConstantTag = 0
)

func (t ConstantTag) String() string {
	switch t {
	case CONSTANT_Utf8:
		return "Utf8"
	case CONSTANT_Integer:
		return "Integer"
	case CONSTANT_Float:
		return "Float"
	case CONSTANT_Long:
		return "Long"
	case CONSTANT_Double:
		return "Double"
	case CONSTANT_Class:
		return "Class"
	case CONSTANT_String:
		return "String"
	case CONSTANT_Fieldref:
		return "Fieldref"
	case CONSTANT_Methodref:
		return "Methodref"
	case CONSTANT_InterfaceMethodref:
		return "InterfaceMethodref"
	case CONSTANT_NameAndType:
		return "NameAndType"
	case CONSTANT_MethodHandle:
		return "MethodHandle"
	case CONSTANT_MethodType:
		return "MethodType"
	case CONSTANT_Dynamic:
		return "Dynamic"
	case CONSTANT_InvokeDynamic:
		return "InvokeDynamic"
	case CONSTANT_Module:
		return "Module"
	case CONSTANT_Package:
		return "Package"
	case CONSTANT_Unusable:
		return "Unusable"
	default:
		return fmt.Sprintf("UNKNOWN_TAG(%d)", uint8(t))
	}
}

// Kind groups the tags by the shape of their body
type ConstantKind int

const (
	KindUnknown       ConstantKind = iota
	KindText                       // u2 length + bytes
	KindNumeric4                   // u4
	KindNumeric8                   // u8, takes two pool slots
	KindSymbolicRef1               // u2 index
	KindSymbolicRef2               // u2 index + u2 index
	KindMethodHandle               // u1 kind + u2 index
)

func (t ConstantTag) Kind() ConstantKind {
	switch t {
	case CONSTANT_Utf8:
		return KindText
	case CONSTANT_Integer, CONSTANT_Float:
		return KindNumeric4
	case CONSTANT_Long, CONSTANT_Double:
		return KindNumeric8
	case CONSTANT_Class, CONSTANT_String, CONSTANT_MethodType, CONSTANT_Module, CONSTANT_Package:
		return KindSymbolicRef1
	case CONSTANT_Fieldref, CONSTANT_Methodref, CONSTANT_InterfaceMethodref,
		CONSTANT_NameAndType, CONSTANT_Dynamic, CONSTANT_InvokeDynamic:
		return KindSymbolicRef2
	case CONSTANT_MethodHandle:
		return KindMethodHandle
	default:
		return KindUnknown
	}
}

// Size returns the number of body bytes following the tag byte, or -1 when the
// body is length-prefixed (Utf8) or the tag is unknown.
func (t ConstantTag) Size() int {
	switch t.Kind() {
	case KindNumeric4:
		return 4
	case KindNumeric8:
		return 8
	case KindSymbolicRef1:
		return 2
	case KindSymbolicRef2:
		return 4
	case KindMethodHandle:
		return 3
	default:
		return -1
	}
}

// Slots is the number of pool indexes an entry of this tag occupies
func (t ConstantTag) Slots() int {
	if t.Kind() == KindNumeric8 {
		return 2
	}
	return 1
}

type AccessFlags uint16

const (
	ACC_PUBLIC       AccessFlags = 0x0001
	ACC_PRIVATE      AccessFlags = 0x0002
	ACC_PROTECTED    AccessFlags = 0x0004
	ACC_STATIC       AccessFlags = 0x0008
	ACC_FINAL        AccessFlags = 0x0010
	ACC_SYNCHRONIZED AccessFlags = 0x0020
	ACC_BRIDGE       AccessFlags = 0x0040
	ACC_VARARGS      AccessFlags = 0x0080
	ACC_NATIVE       AccessFlags = 0x0100
	ACC_INTERFACE    AccessFlags = 0x0200
	ACC_ABSTRACT     AccessFlags = 0x0400
	ACC_STRICT       AccessFlags = 0x0800
	ACC_SYNTHETIC    AccessFlags = 0x1000
)

func (f AccessFlags) Has(flag AccessFlags) bool {
	return f&flag == flag
}

func (f AccessFlags) IsPublic() bool {
	return f.Has(ACC_PUBLIC)
}

func (f AccessFlags) IsStatic() bool {
	return f.Has(ACC_STATIC)
}
