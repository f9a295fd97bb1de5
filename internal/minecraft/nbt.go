package minecraft

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// NBT tag type IDs, per the binary NBT format used by level.dat.
const (
	tagEnd       = 0
	tagByte      = 1
	tagShort     = 2
	tagInt       = 3
	tagLong      = 4
	tagFloat     = 5
	tagDouble    = 6
	tagByteArray = 7
	tagString    = 8
	tagList      = 9
	tagCompound  = 10
	tagIntArray  = 11
	tagLongArray = 12
)

// nbtReader decodes the subset of the NBT binary format needed to locate a
// named value inside a compound tree: every tag type must still be read in
// full (lists and arrays are length-prefixed, compounds are not), so there
// is no way to "skip" an uninteresting tag without decoding its shape.
type nbtReader struct {
	r io.Reader
}

func (d *nbtReader) readU8() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(d.r, b[:])
	return b[0], err
}

func (d *nbtReader) readU16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (d *nbtReader) readI32() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func (d *nbtReader) readString() (string, error) {
	n, err := d.readU16()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *nbtReader) skipN(n int64) error {
	_, err := io.CopyN(io.Discard, d.r, n)
	return err
}

// readPayload decodes the payload of a tag of the given type and returns it
// as a generic value: string, int64 (TAG_Int only), or map[string]any
// (compound). The other numeric scalars, lists and arrays are read past
// and yield nil, since level.dat's LevelName lookup never needs them.
func (d *nbtReader) readPayload(tagType byte) (any, error) {
	switch tagType {
	case tagByte:
		_, err := d.readU8()
		return nil, err
	case tagShort:
		_, err := d.readU16()
		return nil, err
	case tagInt:
		v, err := d.readI32()
		return int64(v), err
	case tagLong:
		if err := d.skipN(8); err != nil {
			return nil, err
		}
		return nil, nil
	case tagFloat:
		return nil, d.skipN(4)
	case tagDouble:
		return nil, d.skipN(8)
	case tagByteArray:
		n, err := d.readI32()
		if err != nil {
			return nil, err
		}
		return nil, d.skipN(int64(n))
	case tagString:
		return d.readString()
	case tagList:
		elemType, err := d.readU8()
		if err != nil {
			return nil, err
		}
		count, err := d.readI32()
		if err != nil {
			return nil, err
		}
		for i := int32(0); i < count; i++ {
			if _, err := d.readPayload(elemType); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case tagCompound:
		return d.readCompound()
	case tagIntArray:
		n, err := d.readI32()
		if err != nil {
			return nil, err
		}
		return nil, d.skipN(int64(n) * 4)
	case tagLongArray:
		n, err := d.readI32()
		if err != nil {
			return nil, err
		}
		return nil, d.skipN(int64(n) * 8)
	default:
		return nil, fmt.Errorf("unknown NBT tag type %d", tagType)
	}
}

// readCompound reads tag entries until a TAG_End, returning a shallow map.
func (d *nbtReader) readCompound() (map[string]any, error) {
	out := map[string]any{}
	for {
		tagType, err := d.readU8()
		if err != nil {
			return nil, err
		}
		if tagType == tagEnd {
			return out, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		value, err := d.readPayload(tagType)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
}

// ReadLevelName gzip-decompresses path and decodes its root NBT compound,
// returning Data.LevelName. Malformed files produce apperr.NbtParseError so
// callers can fall back to the folder name.
func ReadLevelName(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperr.Wrap(apperr.NbtParseError, "open level.dat", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", apperr.Wrap(apperr.NbtParseError, "ungzip level.dat", err)
	}
	defer gz.Close()

	d := &nbtReader{r: gz}

	// Root tag: a single unnamed TAG_Compound.
	rootType, err := d.readU8()
	if err != nil {
		return "", apperr.Wrap(apperr.NbtParseError, "read root tag", err)
	}
	if rootType != tagCompound {
		return "", apperr.New(apperr.NbtParseError, "level.dat root is not a compound")
	}
	if _, err := d.readString(); err != nil { // root name, unused
		return "", apperr.Wrap(apperr.NbtParseError, "read root name", err)
	}

	root, err := d.readCompound()
	if err != nil {
		return "", apperr.Wrap(apperr.NbtParseError, "decode root compound", err)
	}

	data, ok := root["Data"].(map[string]any)
	if !ok {
		return "", apperr.New(apperr.NbtParseError, "level.dat has no Data compound")
	}
	name, ok := data["LevelName"].(string)
	if !ok {
		return "", apperr.New(apperr.NbtParseError, "Data.LevelName missing or not a string")
	}
	return name, nil
}
