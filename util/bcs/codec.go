// Package bcs implements the subset of Binary Canonical Serialization the
// profile package needs: addresses, strings, lookup results and
// single move call programmable transactions.
package bcs

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/suiprofile/common"
)

const AddressLength = 32

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrUnexpectedEOF   = errors.New("unexpected end of data")
)

// Codec implements common.Codec.
//
// Object arguments of a MoveCall are encoded as shared objects, so every
// object passed to a call must be registered with AddSharedObject first.
type Codec struct {
	shared map[string]uint64
}

func NewCodec() *Codec {
	return &Codec{shared: map[string]uint64{}}
}

// AddSharedObject records the initial shared version of a shared object.
func (c *Codec) AddSharedObject(id string, initialSharedVersion uint64) {
	c.shared[normalizeID(id)] = initialSharedVersion
}

// Encode supports string and []byte (as vector<u8>), []string (as
// vector<address>) and common.MoveCall (as TransactionKind).
func (c *Codec) Encode(v any) ([]byte, error) {
	w := &bytes.Buffer{}
	switch value := v.(type) {
	case string:
		writeBytes(w, []byte(value))
	case []byte:
		writeBytes(w, value)
	case []string:
		writeULEB128(w, uint64(len(value)))
		for _, addr := range value {
			if err := writeAddress(w, addr); err != nil {
				return nil, err
			}
		}
	case common.MoveCall:
		if err := c.writeTransactionKind(w, value); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return w.Bytes(), nil
}

// Decode supports *[]common.LookupResult, *string and *[]string
// (vector<address>). Addresses are returned as hex without 0x.
func (c *Codec) Decode(typeTag string, data []byte, out any) error {
	r := &reader{data: data}
	switch target := out.(type) {
	case *[]common.LookupResult:
		if !strings.HasSuffix(typeTag, "::LookupResult>") {
			return fmt.Errorf("%w: %s into lookup results", ErrUnsupportedType, typeTag)
		}
		n, err := r.uleb128()
		if err != nil {
			return err
		}
		results := make([]common.LookupResult, 0, n)
		for i := uint64(0); i < n; i++ {
			lookupAddr, err := r.address()
			if err != nil {
				return err
			}
			profileAddr, err := r.address()
			if err != nil {
				return err
			}
			results = append(results, common.LookupResult{LookupAddr: lookupAddr, ProfileAddr: profileAddr})
		}
		*target = results
	case *string:
		b, err := r.bytes()
		if err != nil {
			return err
		}
		*target = string(b)
	case *[]string:
		n, err := r.uleb128()
		if err != nil {
			return err
		}
		addrs := make([]string, 0, n)
		for i := uint64(0); i < n; i++ {
			addr, err := r.address()
			if err != nil {
				return err
			}
			addrs = append(addrs, addr)
		}
		*target = addrs
	default:
		return fmt.Errorf("%w: %s into %T", ErrUnsupportedType, typeTag, out)
	}
	if r.remaining() != 0 {
		return fmt.Errorf("%s: %d trailing bytes", typeTag, r.remaining())
	}
	return nil
}

func (c *Codec) writeTransactionKind(w *bytes.Buffer, call common.MoveCall) error {
	parts := strings.Split(call.Target, "::")
	if len(parts) != 3 {
		return fmt.Errorf("invalid move call target %q", call.Target)
	}
	if len(call.TypeArguments) != 0 {
		return fmt.Errorf("%w: type arguments in %s", ErrUnsupportedType, call.Target)
	}

	// TransactionKind::ProgrammableTransaction
	writeULEB128(w, 0)

	writeULEB128(w, uint64(len(call.Arguments)))
	for _, arg := range call.Arguments {
		if arg.Object == "" {
			// CallArg::Pure
			writeULEB128(w, 0)
			writeBytes(w, arg.Pure)
			continue
		}
		version, found := c.shared[normalizeID(arg.Object)]
		if !found {
			return fmt.Errorf("%w: object %s is not a known shared object", ErrUnsupportedType, arg.Object)
		}
		// CallArg::Object(ObjectArg::SharedObject)
		writeULEB128(w, 1)
		writeULEB128(w, 1)
		if err := writeAddress(w, arg.Object); err != nil {
			return err
		}
		w.Write(binary.LittleEndian.AppendUint64(nil, version))
		w.WriteByte(1) // mutable
	}

	// a single Command::MoveCall
	writeULEB128(w, 1)
	writeULEB128(w, 0)
	if err := writeAddress(w, parts[0]); err != nil {
		return err
	}
	writeBytes(w, []byte(parts[1]))
	writeBytes(w, []byte(parts[2]))
	writeULEB128(w, 0)
	writeULEB128(w, uint64(len(call.Arguments)))
	for i := range call.Arguments {
		// Argument::Input
		writeULEB128(w, 1)
		w.Write(binary.LittleEndian.AppendUint16(nil, uint16(i)))
	}
	return nil
}

func normalizeID(id string) string {
	return common.NormalizeAddress(id)
}

func writeULEB128(w *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.WriteByte(b)
			return
		}
		w.WriteByte(b | 0x80)
	}
}

func writeBytes(w *bytes.Buffer, b []byte) {
	writeULEB128(w, uint64(len(b)))
	w.Write(b)
}

func writeAddress(w *bytes.Buffer, addr string) error {
	raw := strings.TrimPrefix(addr, "0x")
	if len(raw) == 0 || len(raw) > 2*AddressLength {
		return fmt.Errorf("invalid address %q", addr)
	}
	if _, err := hex.DecodeString(strings.Repeat("0", len(raw)%2) + raw); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	w.Write(ethcommon.LeftPadBytes(ethcommon.FromHex(raw), AddressLength))
	return nil
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uleb128() (uint64, error) {
	var v uint64
	for shift := 0; shift < 64; shift += 7 {
		b, err := r.next(1)
		if err != nil {
			return 0, err
		}
		v |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errors.New("uleb128 overflows 64 bits")
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.uleb128()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.remaining()) {
		return nil, ErrUnexpectedEOF
	}
	return r.next(int(n))
}

func (r *reader) address() (string, error) {
	b, err := r.next(AddressLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
