package validator

import (
	"io"
	"math"
	"strconv"

	"medextract/internal/apperror"
	"medextract/internal/models"
)

const bytesPerMB = 1024 * 1024

// Size rejects files larger than the configured number of megabytes.
// The content is always rewound to the start, pass or fail.
type Size struct {
	maxSizeMB float64
	maxBytes  int64
}

// NewSize builds a Size check with a limit in megabytes.
func NewSize(maxSizeMB float64) *Size {
	return &Size{
		maxSizeMB: maxSizeMB,
		maxBytes:  int64(maxSizeMB * bytesPerMB),
	}
}

func (v *Size) Validate(file *models.UploadedFile) (err error) {
	defer func() {
		if _, seekErr := file.Content.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			err = apperror.Wrap(apperror.KindInternal, seekErr, "failed to rewind upload")
		}
	}()

	size, err := file.Content.Seek(0, io.SeekEnd)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, err, "failed to determine upload size")
	}

	if size > v.maxBytes {
		sizeMB := math.Round(float64(size)/bytesPerMB*100) / 100
		return apperror.New(apperror.KindFileTooLarge,
			"File size is too large (%s MB). File size must not exceed %s MB.",
			strconv.FormatFloat(sizeMB, 'f', -1, 64),
			strconv.FormatFloat(v.maxSizeMB, 'f', -1, 64),
		)
	}
	return nil
}
