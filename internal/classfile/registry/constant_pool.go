package registry

import (
	"fmt"

	"github.com/mabhi256/jvmch/internal/classfile/model"
)

// ConstantPool keeps the resolved Utf8 values of one class file, addressed by
// their 1-based pool index. Other entries only record their tag.
type ConstantPool struct {
	count   uint16 // declared constant_pool_count
	strings *BaseRegistry[uint16, string]
	tags    []model.ConstantTag // tags[i] is the tag of slot i, slot 0 unused
}

func NewConstantPool(count uint16) *ConstantPool {
	return &ConstantPool{
		count:   count,
		strings: NewBaseRegistry[uint16, string](),
		tags:    make([]model.ConstantTag, max(int(count), 1)),
	}
}

// Count returns the declared constant_pool_count (one more than the last valid index)
func (p *ConstantPool) Count() uint16 {
	return p.count
}

func (p *ConstantPool) valid(index uint16) bool {
	return index != 0 && index < p.count
}

// SetTag records the tag occupying a slot
func (p *ConstantPool) SetTag(index uint16, tag model.ConstantTag) {
	if p.valid(index) {
		p.tags[index] = tag
	}
}

// AddUtf8 stores the text of a Utf8 entry
func (p *ConstantPool) AddUtf8(index uint16, text string) {
	if !p.valid(index) {
		return
	}
	p.tags[index] = model.CONSTANT_Utf8
	p.strings.Add(index, text)
}

// Tag returns the tag recorded for a slot
func (p *ConstantPool) Tag(index uint16) (model.ConstantTag, bool) {
	if !p.valid(index) {
		return 0, false
	}
	return p.tags[index], true
}

// Utf8 resolves an index that must point at a Utf8 entry
func (p *ConstantPool) Utf8(index uint16) (string, error) {
	if !p.valid(index) {
		return "", &model.InvalidIndexError{Index: index, Count: p.count}
	}
	text, ok := p.strings.Get(index)
	if !ok {
		return "", &model.InvalidIndexError{Index: index, Count: p.count, Tag: p.tags[index]}
	}
	return text, nil
}

// GetOrUnresolved returns the text or a placeholder for diagnostics
func (p *ConstantPool) GetOrUnresolved(index uint16) string {
	if text, err := p.Utf8(index); err == nil {
		return text
	}
	return fmt.Sprintf("unresolved_utf8_#%d", index)
}

// Utf8Count returns the number of Utf8 entries
func (p *ConstantPool) Utf8Count() int {
	return p.strings.Count()
}
