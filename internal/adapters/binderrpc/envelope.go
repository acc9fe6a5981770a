package binderrpc

import (
	"go.trai.ch/dexopt/internal/core/parcel"
)

// envelope addresses one transaction to a named service.
type envelope struct {
	Service string
	Code    uint32
	Flags   uint32
	Data    []byte
}

func (e envelope) encode() []byte {
	p := parcel.Obtain()
	defer p.Recycle()

	p.WriteString16(e.Service)
	p.WriteUint32(e.Code)
	p.WriteUint32(e.Flags)
	p.WriteByteArray(e.Data)
	return p.Bytes()
}

func decodeEnvelope(b []byte) (envelope, error) {
	p := parcel.FromBytes(b)
	defer p.Recycle()

	var (
		e   envelope
		err error
	)
	if e.Service, err = p.ReadString16(); err != nil {
		return envelope{}, err
	}
	if e.Code, err = p.ReadUint32(); err != nil {
		return envelope{}, err
	}
	if e.Flags, err = p.ReadUint32(); err != nil {
		return envelope{}, err
	}
	if e.Data, err = p.ReadByteArray(); err != nil {
		return envelope{}, err
	}
	return e, nil
}
