package forwardindex

import (
	"bufio"
	"io"
	"os"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// concatenate produces the final forward-index file and the final
// documents, urls, and terms files from the per-batch scratch files and
// the merged global term list (spec §4.5).
func concatenate(outputPrefix string, batchCount, documentCount int64, globalTerms []string) error {
	if err := concatDocuments(outputPrefix, batchCount); err != nil {
		return err
	}
	if err := concatURLs(outputPrefix, batchCount); err != nil {
		return err
	}
	if err := writeTerms(outputPrefix, globalTerms); err != nil {
		return err
	}
	if err := concatPostings(outputPrefix, batchCount, documentCount); err != nil {
		return err
	}
	return nil
}

func concatDocuments(outputPrefix string, batchCount int64) error {
	out, err := os.Create(outputPrefix + ".documents")
	if err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "creating %s.documents", outputPrefix))
	}
	defer out.Close()

	for n := int64(0); n < batchCount; n++ {
		_, documentsPath, _, _ := batchPaths(outputPrefix, n)
		if err := appendFile(out, documentsPath); err != nil {
			return errors.WrapBatch(errors.PhaseConcat, n, err)
		}
	}
	return nil
}

func concatURLs(outputPrefix string, batchCount int64) error {
	out, err := os.Create(outputPrefix + ".urls")
	if err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "creating %s.urls", outputPrefix))
	}
	defer out.Close()

	for n := int64(0); n < batchCount; n++ {
		_, _, urlsPath, _ := batchPaths(outputPrefix, n)
		if err := appendFile(out, urlsPath); err != nil {
			return errors.WrapBatch(errors.PhaseConcat, n, err)
		}
	}
	return nil
}

func writeTerms(outputPrefix string, globalTerms []string) error {
	out, err := os.Create(outputPrefix + ".terms")
	if err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "creating %s.terms", outputPrefix))
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, term := range globalTerms {
		if _, err := w.WriteString(term + "\n"); err != nil {
			return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "writing %s.terms", outputPrefix))
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "flushing %s.terms", outputPrefix))
	}
	return nil
}

// concatPostings writes a fresh header record containing documentCount,
// then appends each batch's postings file after skipping its own 8-byte
// header, in ascending batch number.
func concatPostings(outputPrefix string, batchCount, documentCount int64) error {
	out, err := os.Create(outputPrefix)
	if err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "creating %s", outputPrefix))
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := writeHeader(w, uint32(documentCount)); err != nil {
		return errors.Wrap(errors.PhaseConcat, err)
	}

	for n := int64(0); n < batchCount; n++ {
		postingsPath, _, _, _ := batchPaths(outputPrefix, n)
		if err := appendFileSkipping(w, postingsPath, 8); err != nil {
			return errors.WrapBatch(errors.PhaseConcat, n, err)
		}
	}

	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.PhaseConcat, errors.IOf(err, "flushing %s", outputPrefix))
	}
	return nil
}

// appendFile copies src's full contents onto dst.
func appendFile(dst io.Writer, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.IOf(err, "opening %s", src)
	}
	defer in.Close()
	if _, err := io.Copy(dst, in); err != nil {
		return errors.IOf(err, "copying %s", src)
	}
	return nil
}

// appendFileSkipping copies src's contents onto dst, skipping the first
// skip bytes.
func appendFileSkipping(dst io.Writer, src string, skip int64) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.IOf(err, "opening %s", src)
	}
	defer in.Close()
	if _, err := in.Seek(skip, io.SeekStart); err != nil {
		return errors.IOf(err, "seeking %s", src)
	}
	if _, err := io.Copy(dst, in); err != nil {
		return errors.IOf(err, "copying %s", src)
	}
	return nil
}

// cleanup removes every scratch batch file produced by the run.
func cleanup(outputPrefix string, batchCount int64) error {
	for n := int64(0); n < batchCount; n++ {
		postingsPath, documentsPath, urlsPath, termsPath := batchPaths(outputPrefix, n)
		for _, path := range []string{postingsPath, documentsPath, urlsPath, termsPath} {
			if err := os.Remove(path); err != nil {
				return errors.WrapBatch(errors.PhaseCleanup, n, errors.IOf(err, "removing %s", path))
			}
		}
	}
	return nil
}
