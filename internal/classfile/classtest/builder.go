// Package classtest assembles small class files for tests.
package classtest

import (
	"encoding/binary"

	"github.com/mabhi256/jvmch/internal/classfile/model"
)

type Attribute struct {
	Name string
	Data []byte
}

type member struct {
	access     model.AccessFlags
	name       uint16
	descriptor uint16
	attributes []Attribute
}

// Builder accumulates constant pool entries and members and encodes them
type Builder struct {
	pool       [][]byte
	next       uint16
	utf8       map[string]uint16
	access     model.AccessFlags
	thisClass  uint16
	superClass uint16
	interfaces []uint16
	fields     []member
	methods    []member
	attributes []Attribute
	Major      uint16
}

// New starts a class named internalName (slash separated) extending java/lang/Object
func New(internalName string) *Builder {
	b := &Builder{
		next:   1,
		utf8:   make(map[string]uint16),
		access: model.ACC_PUBLIC | 0x0020, // ACC_SUPER
		Major:  61,
	}
	b.thisClass = b.AddClass(internalName)
	b.superClass = b.AddClass("java/lang/Object")
	return b
}

func (b *Builder) add(slots uint16, entry []byte) uint16 {
	index := b.next
	b.pool = append(b.pool, entry)
	b.next += slots
	return index
}

// AddRaw appends an entry with an arbitrary tag and body
func (b *Builder) AddRaw(tag uint8, body []byte) uint16 {
	slots := uint16(model.ConstantTag(tag).Slots())
	return b.add(slots, append([]byte{tag}, body...))
}

func (b *Builder) AddUtf8(text string) uint16 {
	if index, ok := b.utf8[text]; ok {
		return index
	}
	entry := []byte{byte(model.CONSTANT_Utf8)}
	entry = binary.BigEndian.AppendUint16(entry, uint16(len(text)))
	entry = append(entry, text...)
	index := b.add(1, entry)
	b.utf8[text] = index
	return index
}

func (b *Builder) AddClass(internalName string) uint16 {
	name := b.AddUtf8(internalName)
	return b.AddRaw(uint8(model.CONSTANT_Class), u2(name))
}

func (b *Builder) AddString(text string) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_String), u2(b.AddUtf8(text)))
}

func (b *Builder) AddInteger(v int32) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_Integer), binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (b *Builder) AddFloat(bits uint32) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_Float), binary.BigEndian.AppendUint32(nil, bits))
}

func (b *Builder) AddLong(v int64) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_Long), binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (b *Builder) AddDouble(bits uint64) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_Double), binary.BigEndian.AppendUint64(nil, bits))
}

func (b *Builder) AddNameAndType(name, descriptor string) uint16 {
	n, d := b.AddUtf8(name), b.AddUtf8(descriptor)
	return b.AddRaw(uint8(model.CONSTANT_NameAndType), append(u2(n), u2(d)...))
}

func (b *Builder) AddMethodref(class, name, descriptor string) uint16 {
	c := b.AddClass(class)
	nt := b.AddNameAndType(name, descriptor)
	return b.AddRaw(uint8(model.CONSTANT_Methodref), append(u2(c), u2(nt)...))
}

func (b *Builder) AddMethodHandle(kind uint8, ref uint16) uint16 {
	return b.AddRaw(uint8(model.CONSTANT_MethodHandle), append([]byte{kind}, u2(ref)...))
}

func (b *Builder) AddInterface(internalName string) {
	b.interfaces = append(b.interfaces, b.AddClass(internalName))
}

func (b *Builder) AddField(access model.AccessFlags, name, descriptor string, attrs ...Attribute) *Builder {
	b.fields = append(b.fields, b.member(access, name, descriptor, attrs))
	return b
}

func (b *Builder) AddMethod(access model.AccessFlags, name, descriptor string, attrs ...Attribute) *Builder {
	b.methods = append(b.methods, b.member(access, name, descriptor, attrs))
	return b
}

// AddMain adds public static void main(String[]) with a trivial Code attribute
func (b *Builder) AddMain() *Builder {
	return b.AddMethod(model.ACC_PUBLIC|model.ACC_STATIC, model.MainMethodName, model.MainMethodDescriptor, Code())
}

func (b *Builder) AddAttribute(attr Attribute) *Builder {
	b.attributes = append(b.attributes, attr)
	return b
}

func (b *Builder) member(access model.AccessFlags, name, descriptor string, attrs []Attribute) member {
	for _, attr := range attrs {
		b.AddUtf8(attr.Name)
	}
	return member{
		access:     access,
		name:       b.AddUtf8(name),
		descriptor: b.AddUtf8(descriptor),
		attributes: attrs,
	}
}

// PoolCount is the constant_pool_count the encoded file declares
func (b *Builder) PoolCount() uint16 {
	return b.next
}

// PoolBytes is the encoded size of the pool entries alone
func (b *Builder) PoolBytes() int {
	total := 0
	for _, entry := range b.pool {
		total += len(entry)
	}
	return total
}

func (b *Builder) Bytes() []byte {
	// attribute names must be in the pool before it is encoded
	for _, attr := range b.attributes {
		b.AddUtf8(attr.Name)
	}

	out := binary.BigEndian.AppendUint32(nil, model.ClassMagic)
	out = append(out, u2(0)...)
	out = append(out, u2(b.Major)...)
	out = append(out, u2(b.next)...)
	for _, entry := range b.pool {
		out = append(out, entry...)
	}

	out = append(out, u2(uint16(b.access))...)
	out = append(out, u2(b.thisClass)...)
	out = append(out, u2(b.superClass)...)
	out = append(out, u2(uint16(len(b.interfaces)))...)
	for _, iface := range b.interfaces {
		out = append(out, u2(iface)...)
	}

	out = b.appendMembers(out, b.fields)
	out = b.appendMembers(out, b.methods)
	return b.appendAttributes(out, b.attributes)
}

func (b *Builder) appendMembers(out []byte, members []member) []byte {
	out = append(out, u2(uint16(len(members)))...)
	for _, m := range members {
		out = append(out, u2(uint16(m.access))...)
		out = append(out, u2(m.name)...)
		out = append(out, u2(m.descriptor)...)
		out = b.appendAttributes(out, m.attributes)
	}
	return out
}

func (b *Builder) appendAttributes(out []byte, attrs []Attribute) []byte {
	out = append(out, u2(uint16(len(attrs)))...)
	for _, attr := range attrs {
		out = append(out, u2(b.utf8[attr.Name])...)
		out = binary.BigEndian.AppendUint32(out, uint32(len(attr.Data)))
		out = append(out, attr.Data...)
	}
	return out
}

// Code returns a Code attribute whose body is a single `return`
func Code() Attribute {
	body := []byte{
		0x00, 0x01, // max_stack
		0x00, 0x01, // max_locals
		0x00, 0x00, 0x00, 0x01, // code_length
		0xB1,       // return
		0x00, 0x00, // exception_table_length
		0x00, 0x00, // attributes_count
	}
	return Attribute{Name: "Code", Data: body}
}

// MainClass encodes a class with a default constructor and a main method
func MainClass(internalName string) []byte {
	return New(internalName).
		AddMethod(model.ACC_PUBLIC, "<init>", "()V", Code()).
		AddMain().
		Bytes()
}

// PlainClass encodes a class without an entry point
func PlainClass(internalName string) []byte {
	return New(internalName).
		AddMethod(model.ACC_PUBLIC, "<init>", "()V", Code()).
		AddMethod(model.ACC_PUBLIC, "run", "()V", Code()).
		Bytes()
}

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}
