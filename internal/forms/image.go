// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the cover image size ceiling (4 MB). Files over the limit
// are rejected before anything is forwarded to the backend.
const MaxImageSize = 4 << 20

// ValidateImage checks a staged cover image against the size ceiling and
// the accepted formats. The content type is sniffed from the bytes, not
// taken from the upload metadata. Returns a message key, or "" if the
// image is acceptable.
func ValidateImage(data []byte, declaredSize int64) string {
	if declaredSize > MaxImageSize || int64(len(data)) > MaxImageSize {
		return "forms.image.tooLarge"
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		return "forms.image.invalidType"
	}

	return ""
}
