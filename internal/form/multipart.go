package form

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"resume-builder/internal/model"
)

var ErrPhotoTooLarge = errors.New("photo exceeds size limit")

// DecodeMultipart splits a posted multipart body into field values and the
// optional photo upload. A missing or empty file input yields a nil photo.
func DecodeMultipart(mf *multipart.Form, maxPhotoBytes int64) (Values, *model.Photo, error) {
	values := Values{}
	if mf == nil {
		return values, nil, nil
	}
	for k, vs := range mf.Value {
		values[k] = append([]string(nil), vs...)
	}

	files := mf.File["photo"]
	if len(files) == 0 || files[0].Size == 0 {
		return values, nil, nil
	}
	fh := files[0]
	if maxPhotoBytes > 0 && fh.Size > maxPhotoBytes {
		return values, nil, fmt.Errorf("photo %q is %d bytes: %w", fh.Filename, fh.Size, ErrPhotoTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return values, nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return values, nil, fmt.Errorf("read photo: %w", err)
	}
	return values, &model.Photo{
		Filename:    fh.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
