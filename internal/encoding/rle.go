// Package encoding packs voxel volumes into compact wire payloads.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"brickforge.ai/internal/model"
	"brickforge.ai/internal/voxel"
)

// Encode run-length encodes palette ids into base64(uvarint pairs), each
// pair being (palette_id, run_len).
func Encode(ids []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(ids) {
		id := ids[i]
		run := 1
		for j := i + 1; j < len(ids) && ids[j] == id; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(id))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func Decode(b64 string) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint16
	for i := 0; i < len(raw); {
		id, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if id > 0xFFFF {
			return nil, fmt.Errorf("palette id too large: %d", id)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint16(id))
		}
	}
	return out, nil
}

// Flatten lays a voxel list out as a dense palette-id array indexed
// x + z*width + y*width*depth, with 0 meaning empty. Out-of-bounds voxels
// are dropped.
func Flatten(vox []voxel.Voxel, width, depth, height int) []uint16 {
	ids := make([]uint16, width*depth*height)
	for _, v := range vox {
		if v.X < 0 || v.X >= width || v.Z < 0 || v.Z >= depth || v.Y < 0 || v.Y >= height {
			continue
		}
		ids[v.X+v.Z*width+v.Y*width*depth] = model.PaletteID(v.Color)
	}
	return ids
}

// EncodeVolume is Flatten followed by Encode.
func EncodeVolume(vox []voxel.Voxel, width, depth, height int) string {
	return Encode(Flatten(vox, width, depth, height))
}
