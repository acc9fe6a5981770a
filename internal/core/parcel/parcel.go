// Package parcel implements the flat, 4-byte aligned transaction payload format
// exchanged with the package service.
package parcel

import (
	"encoding/binary"
	"sync"
	"unicode/utf16"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/zerr"
)

// ObjectKind identifies a flattened object.
type ObjectKind int32

const (
	// ObjectNullBinder is an absent binder reference.
	ObjectNullBinder ObjectKind = 0
	// ObjectBinder is a binder reference identified by a handle.
	ObjectBinder ObjectKind = 1
	// ObjectFileDescriptor is a file descriptor.
	ObjectFileDescriptor ObjectKind = 2
)

// Exception codes carried in reply headers.
const (
	ExceptionNone            int32 = 0
	ExceptionIllegalArgument int32 = -3
)

// strictModePolicy is written ahead of every interface token.
const strictModePolicy int32 = 0

var pool = sync.Pool{
	New: func() any {
		return &Parcel{buf: make([]byte, 0, 256)}
	},
}

// Parcel is a growable byte buffer with a read cursor.
// A Parcel is not safe for concurrent use.
type Parcel struct {
	buf []byte
	pos int
}

// Obtain returns an empty parcel from the pool.
func Obtain() *Parcel {
	p, _ := pool.Get().(*Parcel)
	p.Reset()
	return p
}

// FromBytes returns a pooled parcel holding a copy of b, positioned at the start.
func FromBytes(b []byte) *Parcel {
	p := Obtain()
	p.buf = append(p.buf, b...)
	return p
}

// Recycle returns the parcel to the pool. The parcel must not be used afterwards.
func (p *Parcel) Recycle() {
	if p == nil {
		return
	}
	p.Reset()
	pool.Put(p)
}

// Reset empties the parcel.
func (p *Parcel) Reset() {
	p.buf = p.buf[:0]
	p.pos = 0
}

// SetBytes replaces the contents with a copy of b and rewinds.
func (p *Parcel) SetBytes(b []byte) {
	p.buf = append(p.buf[:0], b...)
	p.pos = 0
}

// Bytes returns a copy of the written payload.
func (p *Parcel) Bytes() []byte {
	out := make([]byte, len(p.buf))
	copy(out, p.buf)
	return out
}

// Len returns the payload size in bytes.
func (p *Parcel) Len() int {
	return len(p.buf)
}

// Position returns the read cursor.
func (p *Parcel) Position() int {
	return p.pos
}

// SetPosition moves the read cursor.
func (p *Parcel) SetPosition(pos int) {
	p.pos = pos
}

// Remaining returns the number of unread bytes.
func (p *Parcel) Remaining() int {
	return len(p.buf) - p.pos
}

// WriteInt32 appends a little-endian int32.
func (p *Parcel) WriteInt32(v int32) {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v))
}

// WriteUint32 appends a little-endian uint32.
func (p *Parcel) WriteUint32(v uint32) {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
}

// WriteInt64 appends a little-endian int64.
func (p *Parcel) WriteInt64(v int64) {
	p.buf = binary.LittleEndian.AppendUint64(p.buf, uint64(v))
}

// WriteBool appends a boolean as an int32.
func (p *Parcel) WriteBool(v bool) {
	if v {
		p.WriteInt32(1)
		return
	}
	p.WriteInt32(0)
}

// ReadInt32 reads a little-endian int32.
func (p *Parcel) ReadInt32() (int32, error) {
	v, err := p.ReadUint32()
	return int32(v), err //nolint:gosec // two's complement round trip
}

// ReadUint32 reads a little-endian uint32.
func (p *Parcel) ReadUint32() (uint32, error) {
	if p.Remaining() < 4 {
		return 0, zerr.With(domain.ErrParcelUnderflow, "position", p.pos)
	}
	v := binary.LittleEndian.Uint32(p.buf[p.pos:])
	p.pos += 4
	return v, nil
}

// ReadInt64 reads a little-endian int64.
func (p *Parcel) ReadInt64() (int64, error) {
	if p.Remaining() < 8 {
		return 0, zerr.With(domain.ErrParcelUnderflow, "position", p.pos)
	}
	v := binary.LittleEndian.Uint64(p.buf[p.pos:])
	p.pos += 8
	return int64(v), nil //nolint:gosec // two's complement round trip
}

// ReadBool reads an int32 boolean.
func (p *Parcel) ReadBool() (bool, error) {
	v, err := p.ReadInt32()
	return v != 0, err
}

// WriteString16 appends a UTF-16 string: length in code units, the units, a
// terminating zero unit and padding up to the next 4-byte boundary.
func (p *Parcel) WriteString16(s string) {
	units := utf16.Encode([]rune(s))
	p.WriteInt32(int32(len(units))) //nolint:gosec // strings in transactions are far below 2^31 units
	for _, u := range units {
		p.buf = binary.LittleEndian.AppendUint16(p.buf, u)
	}
	p.buf = binary.LittleEndian.AppendUint16(p.buf, 0)
	p.pad()
}

// ReadString16 reads a UTF-16 string. A null string reads as "".
func (p *Parcel) ReadString16() (string, error) {
	s, _, err := p.ReadNullableString16()
	return s, err
}

// ReadNullableString16 reads a UTF-16 string and reports whether it was non-null.
func (p *Parcel) ReadNullableString16() (string, bool, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return "", false, err
	}
	if n == -1 {
		return "", false, nil
	}
	if n < 0 {
		return "", false, zerr.With(domain.ErrParcelMalformed, "string_length", n)
	}

	size := (int(n) + 1) * 2
	if p.Remaining() < size {
		return "", false, zerr.With(domain.ErrParcelUnderflow, "position", p.pos)
	}

	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(p.buf[p.pos+2*i:])
	}
	p.pos += align(size)
	if p.pos > len(p.buf) {
		p.pos = len(p.buf)
	}
	return string(utf16.Decode(units)), true, nil
}

// WriteStringArray appends a length-prefixed array of strings. A nil slice is written as null.
func (p *Parcel) WriteStringArray(values []string) {
	if values == nil {
		p.WriteInt32(-1)
		return
	}
	p.WriteInt32(int32(len(values))) //nolint:gosec // argument vectors are short
	for _, v := range values {
		p.WriteString16(v)
	}
}

// ReadStringArray reads an array written by WriteStringArray.
func (p *Parcel) ReadStringArray() ([]string, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 || int(n) > p.Remaining()/4 {
		return nil, zerr.With(domain.ErrParcelMalformed, "array_length", n)
	}

	values := make([]string, 0, n)
	for range n {
		s, err := p.ReadString16()
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

// WriteByteArray appends a length-prefixed, padded byte array.
func (p *Parcel) WriteByteArray(b []byte) {
	if b == nil {
		p.WriteInt32(-1)
		return
	}
	p.WriteInt32(int32(len(b))) //nolint:gosec // payloads are bounded by the transport
	p.buf = append(p.buf, b...)
	p.pad()
}

// ReadByteArray reads an array written by WriteByteArray.
func (p *Parcel) ReadByteArray() ([]byte, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 {
		return nil, zerr.With(domain.ErrParcelMalformed, "array_length", n)
	}
	if p.Remaining() < int(n) {
		return nil, zerr.With(domain.ErrParcelUnderflow, "position", p.pos)
	}

	out := make([]byte, n)
	copy(out, p.buf[p.pos:])
	p.pos += align(int(n))
	if p.pos > len(p.buf) {
		p.pos = len(p.buf)
	}
	return out, nil
}

// WriteNullBinder appends an absent binder reference.
func (p *Parcel) WriteNullBinder() {
	p.writeObject(ObjectNullBinder, 0)
}

// WriteBinder appends a binder reference.
func (p *Parcel) WriteBinder(handle int64) {
	p.writeObject(ObjectBinder, handle)
}

// WriteFileDescriptor appends a file descriptor object.
func (p *Parcel) WriteFileDescriptor(fd int64) {
	p.writeObject(ObjectFileDescriptor, fd)
}

// ReadObject reads a flattened object.
func (p *Parcel) ReadObject() (ObjectKind, int64, error) {
	kind, err := p.ReadInt32()
	if err != nil {
		return 0, 0, err
	}
	handle, err := p.ReadInt64()
	if err != nil {
		return 0, 0, err
	}

	switch ObjectKind(kind) {
	case ObjectNullBinder, ObjectBinder, ObjectFileDescriptor:
		return ObjectKind(kind), handle, nil
	default:
		return 0, 0, zerr.With(domain.ErrParcelMalformed, "object_kind", kind)
	}
}

// ExpectObject reads a flattened object and fails unless it is of the given kind.
func (p *Parcel) ExpectObject(want ObjectKind) (int64, error) {
	kind, handle, err := p.ReadObject()
	if err != nil {
		return 0, err
	}
	if kind != want {
		return 0, zerr.With(zerr.With(domain.ErrParcelMalformed, "object_kind", kind), "expected", want)
	}
	return handle, nil
}

// WriteInterfaceToken appends the request header naming the target interface.
func (p *Parcel) WriteInterfaceToken(descriptor string) {
	p.WriteInt32(strictModePolicy)
	p.WriteString16(descriptor)
}

// EnforceInterface reads the request header and checks it names descriptor.
func (p *Parcel) EnforceInterface(descriptor string) error {
	if _, err := p.ReadInt32(); err != nil {
		return err
	}
	got, err := p.ReadString16()
	if err != nil {
		return err
	}
	if got != descriptor {
		return zerr.With(zerr.With(domain.ErrInterfaceMismatch, "expected", descriptor), "got", got)
	}
	return nil
}

// WriteNoException appends a successful reply header.
func (p *Parcel) WriteNoException() {
	p.WriteInt32(ExceptionNone)
}

// WriteException appends a failed reply header.
func (p *Parcel) WriteException(code int32, message string) {
	p.WriteInt32(code)
	p.WriteString16(message)
	p.WriteInt32(0)
}

// ReadException reads a reply header and returns the remote exception it carries, if any.
func (p *Parcel) ReadException() error {
	code, err := p.ReadInt32()
	if err != nil {
		return err
	}
	if code == ExceptionNone {
		return nil
	}

	message, err := p.ReadString16()
	if err != nil {
		return err
	}
	if _, err := p.ReadInt32(); err != nil {
		return err
	}

	return zerr.With(zerr.With(zerr.Wrap(domain.ErrRemoteException, message), "exception_code", code), "message", message)
}

func (p *Parcel) writeObject(kind ObjectKind, handle int64) {
	p.WriteInt32(int32(kind))
	p.WriteInt64(handle)
}

func (p *Parcel) pad() {
	for len(p.buf)%4 != 0 {
		p.buf = append(p.buf, 0)
	}
}

func align(n int) int {
	return (n + 3) &^ 3
}
