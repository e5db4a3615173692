package types

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"sort"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/hash"
)

// Encode serializes v into a Chunk. The wire format is a simple recursive
// tagged encoding (kind byte + kind-specific payload) rather than noms'
// real prolly-tree-aware binary codec — this module only needs the
// property that encode(v) is a deterministic function of v's content, so
// that Hash (spec.md §3) is well defined and stable across processes.
func Encode(v Value) (chunks.Chunk, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return chunks.Chunk{}, err
	}
	return chunks.NewChunk(buf.Bytes()), nil
}

// Decode deserializes the Value encoded in c.
func Decode(c chunks.Chunk) (Value, error) {
	r := bufio.NewReader(bytes.NewReader(c.Data()))
	return readValue(r)
}

// valueHash computes v's content hash by hashing its encoded form. Callers
// that already have an encoded Chunk (e.g. after Encode) should prefer
// c.Hash() instead of re-encoding.
func valueHash(v Value) hash.Hash {
	var buf bytes.Buffer
	d.PanicIfError(writeValue(&buf, v))
	return hash.Of(buf.Bytes())
}

func writeValue(w io.Writer, v Value) error {
	switch t := v.(type) {
	case Bool:
		return writeKindAndBool(w, t)
	case String:
		return writeKindAndString(w, t)
	case Float:
		return writeKindAndFloat(w, t)
	case Ref:
		return writeRef(w, t)
	case Struct:
		return writeStruct(w, t)
	case Set:
		return writeSet(w, t)
	case Map:
		return writeMap(w, t)
	default:
		d.Panic("cannot encode value of type %T", v)
		return nil
	}
}

func writeKind(w io.Writer, k NomsKind) error {
	_, err := w.Write([]byte{byte(k)})
	return err
}

func writeKindAndBool(w io.Writer, b Bool) error {
	if err := writeKind(w, KindBool); err != nil {
		return err
	}
	v := byte(0)
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

func writeKindAndString(w io.Writer, s String) error {
	if err := writeKind(w, KindString); err != nil {
		return err
	}
	return writeString(w, string(s))
}

func writeString(w io.Writer, s string) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(s)))
	if _, err := w.Write(lenBuf[:n]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeKindAndFloat(w io.Writer, f Float) error {
	if err := writeKind(w, KindFloat); err != nil {
		return err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(float64(f)))
	_, err := w.Write(buf[:])
	return err
}

func writeRef(w io.Writer, r Ref) error {
	if err := writeKind(w, KindRef); err != nil {
		return err
	}
	if _, err := w.Write(r.targetHash[:]); err != nil {
		return err
	}
	return writeType(w, r.targetType)
}

func writeStruct(w io.Writer, s Struct) error {
	if err := writeKind(w, KindStruct); err != nil {
		return err
	}
	if err := writeString(w, s.name); err != nil {
		return err
	}
	names := s.fieldNames()
	if err := writeUvarint(w, uint64(len(names))); err != nil {
		return err
	}
	for _, n := range names {
		if err := writeString(w, n); err != nil {
			return err
		}
		if err := writeValue(w, s.fields[n]); err != nil {
			return err
		}
	}
	return nil
}

func writeSet(w io.Writer, s Set) error {
	if err := writeKind(w, KindSet); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(s.elems))); err != nil {
		return err
	}
	for _, e := range s.elems {
		if err := writeValue(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeMap(w io.Writer, m Map) error {
	if err := writeKind(w, KindMap); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(m.entries))); err != nil {
		return err
	}
	for _, e := range m.entries {
		if err := writeValue(w, e.key); err != nil {
			return err
		}
		if err := writeValue(w, e.value); err != nil {
			return err
		}
	}
	return nil
}

func writeUvarint(w io.Writer, n uint64) error {
	var buf [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(buf[:], n)
	_, err := w.Write(buf[:l])
	return err
}

// writeType encodes a Type descriptor, needed to round-trip Ref.targetType.
func writeType(w io.Writer, t *Type) error {
	if t == nil {
		return writeKind(w, 0xff)
	}
	if err := writeKind(w, t.Kind); err != nil {
		return err
	}
	switch t.Kind {
	case KindSet, KindRef:
		return writeType(w, t.ElemTypes[0])
	case KindMap:
		if err := writeType(w, t.ElemTypes[0]); err != nil {
			return err
		}
		return writeType(w, t.ElemTypes[1])
	case KindStruct:
		if err := writeString(w, t.Name); err != nil {
			return err
		}
		names := make([]string, 0, len(t.Fields))
		for n := range t.Fields {
			names = append(names, n)
		}
		sort.Strings(names)
		if err := writeUvarint(w, uint64(len(names))); err != nil {
			return err
		}
		for _, n := range names {
			if err := writeString(w, n); err != nil {
				return err
			}
			if err := writeType(w, t.Fields[n]); err != nil {
				return err
			}
		}
	}
	return nil
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

func readValue(r byteReader) (Value, error) {
	kb, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch NomsKind(kb) {
	case KindBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return Bool(b != 0), nil
	case KindString:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case KindFloat:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		return Float(math.Float64frombits(binary.BigEndian.Uint64(buf[:]))), nil
	case KindRef:
		var hbuf [hash.ByteLen]byte
		if _, err := io.ReadFull(r, hbuf[:]); err != nil {
			return nil, err
		}
		tt, err := readType(r)
		if err != nil {
			return nil, err
		}
		return Ref{hash.Hash(hbuf), tt}, nil
	case KindStruct:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		fields := make(StructData, n)
		for i := uint64(0); i < n; i++ {
			fn, err := readString(r)
			if err != nil {
				return nil, err
			}
			fv, err := readValue(r)
			if err != nil {
				return nil, err
			}
			fields[fn] = fv
		}
		return Struct{name, fields}, nil
	case KindSet:
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		elems := make([]Value, n)
		for i := uint64(0); i < n; i++ {
			v, err := readValue(r)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return Set{elems}, nil
	case KindMap:
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		entries := make([]mapEntry, n)
		for i := uint64(0); i < n; i++ {
			k, err := readValue(r)
			if err != nil {
				return nil, err
			}
			v, err := readValue(r)
			if err != nil {
				return nil, err
			}
			entries[i] = mapEntry{k, v}
		}
		return Map{entries}, nil
	default:
		d.Panic("cannot decode value with kind byte %d", kb)
		return nil, nil
	}
}

func readString(r byteReader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readType(r byteReader) (*Type, error) {
	kb, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if kb == 0xff {
		return nil, nil
	}
	k := NomsKind(kb)
	switch k {
	case KindSet:
		elem, err := readType(r)
		if err != nil {
			return nil, err
		}
		return MakeSetType(elem), nil
	case KindRef:
		elem, err := readType(r)
		if err != nil {
			return nil, err
		}
		return MakeRefType(elem), nil
	case KindMap:
		key, err := readType(r)
		if err != nil {
			return nil, err
		}
		val, err := readType(r)
		if err != nil {
			return nil, err
		}
		return MakeMapType(key, val), nil
	case KindStruct:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		fields := make(map[string]*Type, n)
		for i := uint64(0); i < n; i++ {
			fn, err := readString(r)
			if err != nil {
				return nil, err
			}
			ft, err := readType(r)
			if err != nil {
				return nil, err
			}
			fields[fn] = ft
		}
		return MakeStructType(name, fields), nil
	default:
		return &Type{Kind: k}, nil
	}
}
