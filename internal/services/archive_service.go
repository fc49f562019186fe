package services

import (
	"Vaulted/internal/storage"
	"archive/zip"
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ArchiveService turns a list of archive entries into ZIP-formatted bytes
// written incrementally to w. The full archive is never held in memory: each
// entry is copied from its storage stream straight into the encoder.
type ArchiveService interface {
	Stream(ctx context.Context, entries []ArchiveEntry, w io.Writer) error
}

type archiveServiceImpl struct {
	objectStorage storage.ObjectStorage
	logService    LogService
}

func NewArchiveService(objectStorage storage.ObjectStorage, logService LogService) ArchiveService {
	return &archiveServiceImpl{objectStorage: objectStorage, logService: logService}
}

// Stream appends entries in order. A failed fetch does not abort the
// archive: the entry is replaced with a short <path>.error.txt note and the
// loop continues. Encoder errors are fatal since they mean the output side
// is broken; the caller is expected to abort the transfer on a non-nil
// return so the client sees a truncated download instead of a silently
// incomplete archive.
func (s *archiveServiceImpl) Stream(ctx context.Context, entries []ArchiveEntry, w io.Writer) error {
	zipWriter := zip.NewWriter(w)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			zipWriter.Close()
			return err
		}

		source, err := s.objectStorage.GetStream(ctx, entry.StorageKey)
		if err != nil {
			s.logService.Log.WithFields(logrus.Fields{
				"entry": entry.ArchivePath,
				"key":   entry.StorageKey,
				"error": err.Error(),
			}).Warn("failed to fetch archive entry, substituting error note")
			if err := s.writeErrorEntry(zipWriter, entry.ArchivePath, err); err != nil {
				zipWriter.Close()
				return err
			}
			continue
		}

		entryWriter, err := zipWriter.Create(entry.ArchivePath)
		if err != nil {
			source.Close()
			zipWriter.Close()
			return err
		}

		_, copyErr := io.Copy(entryWriter, source)
		source.Close()
		if copyErr != nil {
			s.logService.Log.WithFields(logrus.Fields{
				"entry": entry.ArchivePath,
				"error": copyErr.Error(),
			}).Warn("archive entry stream interrupted")
			// The copy error may come from the source or from the output.
			// Writing the error note answers that: if the output is broken
			// the write fails too and we stop fetching further entries.
			if err := s.writeErrorEntry(zipWriter, entry.ArchivePath, copyErr); err != nil {
				zipWriter.Close()
				return err
			}
		}
	}

	return zipWriter.Close()
}

func (s *archiveServiceImpl) writeErrorEntry(zipWriter *zip.Writer, archivePath string, cause error) error {
	noteWriter, err := zipWriter.Create(archivePath + ".error.txt")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(noteWriter, "Failed to download: %v\n", cause)
	return err
}
