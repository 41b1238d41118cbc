package forwardindex

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// buildMapping builds the global term -> global id lookup once, from the
// final sorted-unique term list (spec §4.4: "build a hash mapping term ->
// global id from the global term vector exactly once").
func buildMapping(globalTerms []string) map[string]uint32 {
	mapping := make(map[string]uint32, len(globalTerms))
	for id, term := range globalTerms {
		mapping[term] = uint32(id)
	}
	return mapping
}

// remapBatch rewrites one batch's postings file in place, replacing every
// local term id with its global image, leaving the file's byte layout
// (record boundaries, lengths) untouched. It walks records with ordinary
// sequential Read calls, which advance the file's read position, and
// patches each record's payload with WriteAt, which addresses an explicit
// offset and leaves that read position undisturbed.
func remapBatch(outputPrefix string, n int64, mapping map[string]uint32) error {
	postingsPath, _, _, termsPath := batchPaths(outputPrefix, n)

	localTerms, err := readLines(termsPath)
	if err != nil {
		return errors.WrapBatch(errors.PhaseRemap, n, err)
	}

	localToGlobal := make([]uint32, len(localTerms))
	for localID, term := range localTerms {
		globalID, ok := mapping[term]
		if !ok {
			return errors.WrapBatch(errors.PhaseRemap, n,
				errors.Invariantf("term %q from batch %d terms file missing from global dictionary", term, n))
		}
		localToGlobal[localID] = globalID
	}

	f, err := os.OpenFile(postingsPath, os.O_RDWR, 0)
	if err != nil {
		return errors.WrapBatch(errors.PhaseRemap, n, errors.IOf(err, "opening %s", postingsPath))
	}
	defer f.Close()

	if _, err := readRecord(f); err != nil {
		return errors.WrapBatch(errors.PhaseRemap, n, errors.IOf(err, "reading header of %s", postingsPath))
	}

	pos := int64(8)
	for {
		ids, err := readRecord(f)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WrapBatch(errors.PhaseRemap, n, errors.IOf(err, "reading %s", postingsPath))
		}
		if len(ids) > 0 {
			payload := make([]byte, 4*len(ids))
			for i, localID := range ids {
				globalID := localToGlobal[localID]
				binary.LittleEndian.PutUint32(payload[i*4:i*4+4], globalID)
			}
			if _, err := f.WriteAt(payload, pos+4); err != nil {
				return errors.WrapBatch(errors.PhaseRemap, n, errors.IOf(err, "rewriting record in %s", postingsPath))
			}
		}
		pos += 4 + int64(4*len(ids))
	}
	return nil
}
