package forwardindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeRecord writes a single length-prefixed postings record: a 4-byte
// little-endian count followed by that many 4-byte little-endian term ids.
func writeRecord(w io.Writer, ids []uint32) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(ids)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("writing record length: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], id)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing record payload: %w", err)
	}
	return nil
}

// writeHeader writes the single-integer header record that must open every
// postings file, per the binary postings format in spec §6.
func writeHeader(w io.Writer, count uint32) error {
	return writeRecord(w, []uint32{count})
}

// readRecord reads one length-prefixed record. io.EOF is returned
// unwrapped when no more records remain.
func readRecord(r io.Reader) ([]uint32, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n == 0 {
		return []uint32{}, nil
	}
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading record payload: %w", err)
	}
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return ids, nil
}

// readHeader reads the leading header record and returns its single
// payload value (the document count).
func readHeader(r io.Reader) (uint32, error) {
	ids, err := readRecord(r)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed header record: want 1 value, got %d", len(ids))
	}
	return ids[0], nil
}

// ReadPostings parses an entire postings stream back into a header value
// and the per-document term-id slices that follow it. It is the inverse of
// writeHeader+writeRecord and is used by tests to verify the round-trip
// law in spec §8.
func ReadPostings(r io.Reader) (header uint32, documents [][]uint32, err error) {
	header, err = readHeader(r)
	if err != nil {
		return 0, nil, err
	}
	for {
		ids, err := readRecord(r)
		if err == io.EOF {
			return header, documents, nil
		}
		if err != nil {
			return 0, nil, err
		}
		documents = append(documents, ids)
	}
}
