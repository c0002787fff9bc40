package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
)

// WriteID3File writes a file that carries only an ID3v2.3 tag with the given title, artist and
// optional PNG picture. It is enough for tag readers; it is not playable audio.
func WriteID3File(t *testing.T, path, title, artist string, picture []byte) {
	t.Helper()

	var frames bytes.Buffer
	if title != "" {
		writeID3Frame(&frames, "TIT2", append([]byte{0}, title...))
	}
	if artist != "" {
		writeID3Frame(&frames, "TPE1", append([]byte{0}, artist...))
	}
	if len(picture) > 0 {
		var apic bytes.Buffer
		apic.WriteByte(0) // ISO-8859-1
		apic.WriteString("image/png")
		apic.WriteByte(0)
		apic.WriteByte(3) // front cover
		apic.WriteByte(0) // empty description
		apic.Write(picture)
		writeID3Frame(&frames, "APIC", apic.Bytes())
	}

	var file bytes.Buffer
	file.WriteString("ID3")
	file.Write([]byte{3, 0, 0})
	file.Write(syncsafe(frames.Len()))
	file.Write(frames.Bytes())

	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		t.Fatalf("write id3 file: %v", err)
	}
}

func writeID3Frame(buf *bytes.Buffer, id string, body []byte) {
	buf.WriteString(id)
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(body)))
	buf.Write(size[:])
	buf.Write([]byte{0, 0})
	buf.Write(body)
}

func syncsafe(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7f,
		byte(n>>14) & 0x7f,
		byte(n>>7) & 0x7f,
		byte(n) & 0x7f,
	}
}
