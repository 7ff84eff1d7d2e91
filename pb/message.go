package pb

import (
	"fmt"
	"io"

	proto "github.com/gogo/protobuf/proto"
)

// Frame_Kind says what the rows of a frame hold.
type Frame_Kind int32

const (
	Frame_MESSAGE  Frame_Kind = 0
	Frame_CODEWORD Frame_Kind = 1
	Frame_PARITY   Frame_Kind = 2
)

var Frame_Kind_name = map[int32]string{
	0: "MESSAGE",
	1: "CODEWORD",
	2: "PARITY",
}

var Frame_Kind_value = map[string]int32{
	"MESSAGE":  0,
	"CODEWORD": 1,
	"PARITY":   2,
}

func (x Frame_Kind) Enum() *Frame_Kind {
	p := new(Frame_Kind)
	*p = x
	return p
}

func (x Frame_Kind) String() string {
	return proto.EnumName(Frame_Kind_name, int32(x))
}

func (x *Frame_Kind) UnmarshalJSON(data []byte) error {
	value, err := proto.UnmarshalJSONEnum(Frame_Kind_value, data, "Frame_Kind")
	if err != nil {
		return err
	}
	*x = Frame_Kind(value)
	return nil
}

// Frame is the bchcodec.Frame message of frame.proto.
type Frame struct {
	N                    *uint32     `protobuf:"varint,1,opt,name=n" json:"n,omitempty"`
	K                    *uint32     `protobuf:"varint,2,opt,name=k" json:"k,omitempty"`
	Kind                 *Frame_Kind `protobuf:"varint,3,opt,name=kind,enum=bchcodec.Frame_Kind" json:"kind,omitempty"`
	Rows                 *uint32     `protobuf:"varint,4,opt,name=rows" json:"rows,omitempty"`
	Width                *uint32     `protobuf:"varint,5,opt,name=width" json:"width,omitempty"`
	Bits                 []byte      `protobuf:"bytes,6,opt,name=bits" json:"bits,omitempty"`
	Errors               []int32     `protobuf:"zigzag32,7,rep,name=errors" json:"errors,omitempty"`
	XXX_NoUnkeyedLiteral struct{}    `json:"-"`
	XXX_unrecognized     []byte      `json:"-"`
	XXX_sizecache        int32       `json:"-"`
}

func (m *Frame) Reset()         { *m = Frame{} }
func (m *Frame) String() string { return proto.CompactTextString(m) }
func (*Frame) ProtoMessage()    {}
func (m *Frame) XXX_Unmarshal(b []byte) error {
	return m.Unmarshal(b)
}
func (m *Frame) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return append(b, data...), nil
}
func (m *Frame) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Frame.Merge(m, src)
}
func (m *Frame) XXX_Size() int {
	return m.Size()
}
func (m *Frame) XXX_DiscardUnknown() {
	xxx_messageInfo_Frame.DiscardUnknown(m)
}

var xxx_messageInfo_Frame proto.InternalMessageInfo

func (m *Frame) GetN() uint32 {
	if m != nil && m.N != nil {
		return *m.N
	}
	return 0
}

func (m *Frame) GetK() uint32 {
	if m != nil && m.K != nil {
		return *m.K
	}
	return 0
}

func (m *Frame) GetKind() Frame_Kind {
	if m != nil && m.Kind != nil {
		return *m.Kind
	}
	return Frame_MESSAGE
}

func (m *Frame) GetRows() uint32 {
	if m != nil && m.Rows != nil {
		return *m.Rows
	}
	return 0
}

func (m *Frame) GetWidth() uint32 {
	if m != nil && m.Width != nil {
		return *m.Width
	}
	return 0
}

func (m *Frame) GetBits() []byte {
	if m != nil {
		return m.Bits
	}
	return nil
}

func (m *Frame) GetErrors() []int32 {
	if m != nil {
		return m.Errors
	}
	return nil
}

func init() {
	proto.RegisterEnum("bchcodec.Frame_Kind", Frame_Kind_name, Frame_Kind_value)
	proto.RegisterType((*Frame)(nil), "bchcodec.Frame")
}

func tag(field int, wire int) uint64 {
	return uint64(field)<<3 | uint64(wire)
}

func zigzag32(v int32) uint64 {
	return uint64(uint32(v<<1) ^ uint32(v>>31))
}

// Size returns the length of the encoded message.
func (m *Frame) Size() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range []*uint32{m.N, m.K, m.Rows, m.Width} {
		if v != nil {
			n += 1 + proto.SizeVarint(uint64(*v))
		}
	}
	if m.Kind != nil {
		n += 1 + proto.SizeVarint(uint64(int64(*m.Kind)))
	}
	if m.Bits != nil {
		n += 1 + proto.SizeVarint(uint64(len(m.Bits))) + len(m.Bits)
	}
	for _, e := range m.Errors {
		n += 1 + proto.SizeVarint(zigzag32(e))
	}
	return n + len(m.XXX_unrecognized)
}

// Marshal encodes the message in field order. Unknown fields read by
// Unmarshal are written back unchanged.
func (m *Frame) Marshal() ([]byte, error) {
	b := proto.NewBuffer(make([]byte, 0, m.Size()))
	varint := func(field int, v uint64) {
		_ = b.EncodeVarint(tag(field, proto.WireVarint))
		_ = b.EncodeVarint(v)
	}
	if m.N != nil {
		varint(1, uint64(*m.N))
	}
	if m.K != nil {
		varint(2, uint64(*m.K))
	}
	if m.Kind != nil {
		varint(3, uint64(int64(*m.Kind)))
	}
	if m.Rows != nil {
		varint(4, uint64(*m.Rows))
	}
	if m.Width != nil {
		varint(5, uint64(*m.Width))
	}
	if m.Bits != nil {
		_ = b.EncodeVarint(tag(6, proto.WireBytes))
		_ = b.EncodeRawBytes(m.Bits)
	}
	for _, e := range m.Errors {
		varint(7, zigzag32(e))
	}
	return append(b.Bytes(), m.XXX_unrecognized...), nil
}

// Unmarshal decodes data into m, merging with what m already holds.
// Errors are accepted both packed and unpacked.
func (m *Frame) Unmarshal(data []byte) error {
	for i := 0; i < len(data); {
		start := i
		key, n := proto.DecodeVarint(data[i:])
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
		i += n
		field, wire := int(key>>3), int(key&7)
		if field <= 0 {
			return fmt.Errorf("proto: Frame: illegal tag %d (wire type %d)", field, wire)
		}

		switch wire {
		case proto.WireVarint:
			v, n := proto.DecodeVarint(data[i:])
			if n == 0 {
				return io.ErrUnexpectedEOF
			}
			i += n
			switch field {
			case 1:
				m.N = proto.Uint32(uint32(v))
			case 2:
				m.K = proto.Uint32(uint32(v))
			case 3:
				m.Kind = Frame_Kind(int32(v)).Enum()
			case 4:
				m.Rows = proto.Uint32(uint32(v))
			case 5:
				m.Width = proto.Uint32(uint32(v))
			case 7:
				m.Errors = append(m.Errors, unzigzag32(v))
			default:
				m.XXX_unrecognized = append(m.XXX_unrecognized, data[start:i]...)
			}

		case proto.WireBytes:
			l, n := proto.DecodeVarint(data[i:])
			if n == 0 {
				return io.ErrUnexpectedEOF
			}
			i += n
			if l > uint64(len(data)-i) {
				return io.ErrUnexpectedEOF
			}
			payload := data[i : i+int(l)]
			i += int(l)
			switch field {
			case 6:
				m.Bits = append([]byte{}, payload...)
			case 7:
				for j := 0; j < len(payload); {
					v, n := proto.DecodeVarint(payload[j:])
					if n == 0 {
						return io.ErrUnexpectedEOF
					}
					j += n
					m.Errors = append(m.Errors, unzigzag32(v))
				}
			default:
				m.XXX_unrecognized = append(m.XXX_unrecognized, data[start:i]...)
			}

		case proto.WireFixed64, proto.WireFixed32:
			size := 8
			if wire == proto.WireFixed32 {
				size = 4
			}
			if len(data)-i < size {
				return io.ErrUnexpectedEOF
			}
			i += size
			m.XXX_unrecognized = append(m.XXX_unrecognized, data[start:i]...)

		default:
			return fmt.Errorf("proto: Frame: illegal wire type %d for field %d", wire, field)
		}
	}
	return nil
}

func unzigzag32(v uint64) int32 {
	u := uint32(v)
	return int32(u>>1) ^ -int32(u&1)
}
