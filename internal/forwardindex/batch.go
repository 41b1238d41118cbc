package forwardindex

import (
	"bufio"
	"fmt"
	"os"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// Batch is a fixed block of records assigned a dense batch number and a
// starting document ordinal, per the data model's (batch_number, records,
// first_document, output_prefix) tuple.
type Batch struct {
	Number        int64
	Records       []Record
	FirstDocument int64
	OutputPrefix  string
}

// batchPaths names the four files a batch worker produces, derived from
// the shared output prefix and the batch number.
func batchPaths(prefix string, n int64) (postings, documents, urls, terms string) {
	base := fmt.Sprintf("%s.batch.%d", prefix, n)
	return base, base + ".documents", base + ".urls", base + ".terms"
}

// runBatch executes the batch worker algorithm (spec §4.1): write a header
// record, then for each record append its trec-id/url lines, tokenize and
// normalize its content into batch-local term ids, and write the
// resulting id sequence as a postings record.
func runBatch(b Batch, content ContentFunc, term TermFunc) error {
	postingsPath, documentsPath, urlsPath, termsPath := batchPaths(b.OutputPrefix, b.Number)

	postingsFile, err := os.Create(postingsPath)
	if err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "creating %s", postingsPath))
	}
	defer postingsFile.Close()
	postingsW := bufio.NewWriter(postingsFile)

	documentsFile, err := os.Create(documentsPath)
	if err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "creating %s", documentsPath))
	}
	defer documentsFile.Close()
	documentsW := bufio.NewWriter(documentsFile)

	urlsFile, err := os.Create(urlsPath)
	if err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "creating %s", urlsPath))
	}
	defer urlsFile.Close()
	urlsW := bufio.NewWriter(urlsFile)

	termsFile, err := os.Create(termsPath)
	if err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "creating %s", termsPath))
	}
	defer termsFile.Close()
	termsW := bufio.NewWriter(termsFile)

	if err := writeHeader(postingsW, uint32(len(b.Records))); err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, err)
	}

	localIDs := make(map[string]uint32)

	for _, rec := range b.Records {
		if _, err := documentsW.WriteString(rec.TrecID() + "\n"); err != nil {
			return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "writing %s", documentsPath))
		}
		if _, err := urlsW.WriteString(rec.URL() + "\n"); err != nil {
			return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "writing %s", urlsPath))
		}

		var ids []uint32
		var termErr error
		content(rec.Content(), func(raw string) {
			if termErr != nil {
				return
			}
			t := term(raw)
			id, ok := localIDs[t]
			if !ok {
				id = uint32(len(localIDs))
				localIDs[t] = id
				if _, err := termsW.WriteString(t + "\n"); err != nil {
					termErr = err
					return
				}
			}
			ids = append(ids, id)
		})
		if termErr != nil {
			return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(termErr, "writing %s", termsPath))
		}

		if err := writeRecord(postingsW, ids); err != nil {
			return errors.WrapBatch(errors.PhaseTokenize, b.Number, err)
		}
	}

	if err := postingsW.Flush(); err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "flushing %s", postingsPath))
	}
	if err := documentsW.Flush(); err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "flushing %s", documentsPath))
	}
	if err := urlsW.Flush(); err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "flushing %s", urlsPath))
	}
	if err := termsW.Flush(); err != nil {
		return errors.WrapBatch(errors.PhaseTokenize, b.Number, errors.IOf(err, "flushing %s", termsPath))
	}
	return nil
}
