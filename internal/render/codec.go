package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"google.golang.org/protobuf/encoding/protowire"
)

// Номера полей в protobuf-совместимой раскладке кадра
const (
	fieldObserver protowire.Number = 1
	fieldSequence protowire.Number = 2
	fieldParticle protowire.Number = 3

	fieldX     protowire.Number = 1
	fieldY     protowire.Number = 2
	fieldZ     protowire.Number = 3
	fieldColor protowire.Number = 4
)

var errMalformed = errors.New("render: повреждённый кадр")

// Codec кодирует ParticleBatch: сообщение protobuf wire format, сжатое zstd.
// Безопасен для конкурентного использования.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCodec создаёт кодек
func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Close освобождает ресурсы кодека
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}

// EncodeBatch сериализует и сжимает кадр
func (c *Codec) EncodeBatch(b ParticleBatch) ([]byte, error) {
	raw := make([]byte, 0, 24+len(b.Particles)*20)

	raw = protowire.AppendTag(raw, fieldObserver, protowire.BytesType)
	raw = protowire.AppendBytes(raw, b.Observer[:])
	raw = protowire.AppendTag(raw, fieldSequence, protowire.VarintType)
	raw = protowire.AppendVarint(raw, b.Sequence)

	var msg []byte
	for _, p := range b.Particles {
		msg = msg[:0]
		msg = appendFloat(msg, fieldX, p.X)
		msg = appendFloat(msg, fieldY, p.Y)
		msg = appendFloat(msg, fieldZ, p.Z)
		msg = protowire.AppendTag(msg, fieldColor, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(p.Color.R)<<16|uint64(p.Color.G)<<8|uint64(p.Color.B))

		raw = protowire.AppendTag(raw, fieldParticle, protowire.BytesType)
		raw = protowire.AppendBytes(raw, msg)
	}

	return c.enc.EncodeAll(raw, nil), nil
}

// DecodeBatch распаковывает и разбирает кадр. Неизвестные поля пропускаются.
func (c *Codec) DecodeBatch(data []byte) (ParticleBatch, error) {
	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return ParticleBatch{}, fmt.Errorf("zstd: %w", err)
	}

	var b ParticleBatch
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return ParticleBatch{}, errMalformed
		}
		raw = raw[n:]

		switch {
		case num == fieldObserver && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ParticleBatch{}, errMalformed
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return ParticleBatch{}, fmt.Errorf("observer: %w", err)
			}
			b.Observer = id
			raw = raw[n:]
		case num == fieldSequence && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return ParticleBatch{}, errMalformed
			}
			b.Sequence = v
			raw = raw[n:]
		case num == fieldParticle && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ParticleBatch{}, errMalformed
			}
			p, err := decodeParticle(v)
			if err != nil {
				return ParticleBatch{}, err
			}
			b.Particles = append(b.Particles, p)
			raw = raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return ParticleBatch{}, errMalformed
			}
			raw = raw[n:]
		}
	}
	return b, nil
}

func decodeParticle(raw []byte) (Particle, error) {
	var p Particle
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return Particle{}, errMalformed
		}
		raw = raw[n:]

		switch {
		case typ == protowire.Fixed64Type && (num == fieldX || num == fieldY || num == fieldZ):
			v, n := protowire.ConsumeFixed64(raw)
			if n < 0 {
				return Particle{}, errMalformed
			}
			f := math.Float64frombits(v)
			switch num {
			case fieldX:
				p.X = f
			case fieldY:
				p.Y = f
			default:
				p.Z = f
			}
			raw = raw[n:]
		case num == fieldColor && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return Particle{}, errMalformed
			}
			p.Color.R = uint8(v >> 16)
			p.Color.G = uint8(v >> 8)
			p.Color.B = uint8(v)
			raw = raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return Particle{}, errMalformed
			}
			raw = raw[n:]
		}
	}
	return p, nil
}

func appendFloat(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}
