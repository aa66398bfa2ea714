// Package vdf implements the binary VDF (Valve Data Format) variant used by
// Steam for shortcuts.vdf. Documents are parsed into a generic ordered
// key/value model so that fields this tool never touches survive a
// load/modify/save cycle byte for byte.
package vdf

import (
	"encoding/binary"
	"fmt"
)

// Binary VDF type markers.
const (
	typeObject byte = 0x00
	typeString byte = 0x01
	typeInt32  byte = 0x02
	typeEnd    byte = 0x08
)

// Kind identifies the value type stored under a key.
type Kind int

const (
	KindObject Kind = iota
	KindString
	KindInt32
)

// Value is a tagged variant holding one VDF value.
type Value struct {
	Kind Kind
	Str  string
	Int  uint32
	Obj  *Object
}

// Object is an ordered mapping from key to Value. Iteration via Keys
// reflects insertion order, which is what keeps marshalling stable.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "" if absent or not a string.
func (o *Object) GetString(key string) string {
	if v, ok := o.values[key]; ok && v.Kind == KindString {
		return v.Str
	}
	return ""
}

// GetInt returns the int32 stored under key, or 0 if absent or not an int32.
func (o *Object) GetInt(key string) uint32 {
	if v, ok := o.values[key]; ok && v.Kind == KindInt32 {
		return v.Int
	}
	return 0
}

// GetObject returns the nested object stored under key, or nil.
func (o *Object) GetObject(key string) *Object {
	if v, ok := o.values[key]; ok && v.Kind == KindObject {
		return v.Obj
	}
	return nil
}

func (o *Object) set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// SetString stores a string under key, keeping the key's existing position.
func (o *Object) SetString(key, val string) {
	o.set(key, Value{Kind: KindString, Str: val})
}

// SetInt stores an int32 under key.
func (o *Object) SetInt(key string, val uint32) {
	o.set(key, Value{Kind: KindInt32, Int: val})
}

// SetObject stores a nested object under key.
func (o *Object) SetObject(key string, obj *Object) {
	o.set(key, Value{Kind: KindObject, Obj: obj})
}

// Delete removes a key, preserving the order of the remaining keys.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// ParseError reports a malformed document and where parsing stopped.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vdf: %s at offset %d", e.Msg, e.Offset)
}

// Parse decodes a full binary VDF document. The document is an object body:
// a sequence of typed key/value entries terminated by an end marker.
func Parse(data []byte) (*Object, error) {
	p := &parser{data: data}
	obj, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if p.pos != len(data) {
		return nil, &ParseError{Offset: p.pos, Msg: "trailing bytes after document"}
	}
	return obj, nil
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// parseBody reads key/value entries until the end marker.
func (p *parser) parseBody() (*Object, error) {
	obj := NewObject()

	for {
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of data")
		}

		marker := p.data[p.pos]
		p.pos++

		if marker == typeEnd {
			return obj, nil
		}

		key, err := p.readString()
		if err != nil {
			return nil, err
		}

		switch marker {
		case typeString:
			val, err := p.readString()
			if err != nil {
				return nil, err
			}
			obj.SetString(key, val)

		case typeInt32:
			if p.pos+4 > len(p.data) {
				return nil, p.errorf("unexpected end of data reading int32 for %q", key)
			}
			obj.SetInt(key, binary.LittleEndian.Uint32(p.data[p.pos:p.pos+4]))
			p.pos += 4

		case typeObject:
			child, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			obj.SetObject(key, child)

		default:
			return nil, p.errorf("unknown type marker 0x%02x for key %q", marker, key)
		}
	}
}

// readString reads a NUL-terminated string.
func (p *parser) readString() (string, error) {
	start := p.pos
	for p.pos < len(p.data) {
		if p.data[p.pos] == 0x00 {
			s := string(p.data[start:p.pos])
			p.pos++
			return s, nil
		}
		p.pos++
	}
	return "", &ParseError{Offset: start, Msg: "unterminated string"}
}

// Marshal encodes the object back to the binary wire form. Parsing a
// document and marshalling it unchanged reproduces the input bytes.
func (o *Object) Marshal() []byte {
	return o.appendTo(nil)
}

func (o *Object) appendTo(buf []byte) []byte {
	for _, key := range o.keys {
		v := o.values[key]
		switch v.Kind {
		case KindString:
			buf = append(buf, typeString)
			buf = appendString(buf, key)
			buf = appendString(buf, v.Str)
		case KindInt32:
			buf = append(buf, typeInt32)
			buf = appendString(buf, key)
			buf = binary.LittleEndian.AppendUint32(buf, v.Int)
		case KindObject:
			buf = append(buf, typeObject)
			buf = appendString(buf, key)
			buf = v.Obj.appendTo(buf)
		}
	}
	return append(buf, typeEnd)
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	return append(buf, 0x00)
}
