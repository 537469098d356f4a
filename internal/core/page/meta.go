package page

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// exifTimeLayout is the timestamp format mandated by the EXIF standard.
const exifTimeLayout = "2006:01:02 15:04:05"

// ReadMeta extracts capture metadata from an image file. Missing or
// malformed EXIF is normal for scanner output, so EXIF failures degrade to
// whatever the image header alone can provide. Only an unreadable file is
// an error.
func ReadMeta(path string) (Meta, error) {
	var m Meta

	f, err := os.Open(path)
	if err != nil {
		return m, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Unknown formats still get a chance at EXIF-provided dimensions below.
	if cfg, _, derr := image.DecodeConfig(f); derr == nil {
		m.Width = cfg.Width
		m.Height = cfg.Height
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read image: %w", err)
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return m, nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return m, nil
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "Software", "ProcessingSoftware":
			if m.Software == "" {
				m.Software = entry.Formatted
			}
		case "DateTimeOriginal", "DateTimeDigitized", "DateTime":
			if m.CapturedAt.IsZero() {
				if t, perr := time.ParseInLocation(exifTimeLayout, entry.Formatted, time.Local); perr == nil {
					m.CapturedAt = t
				}
			}
		case "PixelXDimension":
			// The image header is authoritative, EXIF fills in only when
			// the header could not be decoded for dimensions.
			if m.Width == 0 {
				if v, perr := strconv.Atoi(entry.Formatted); perr == nil && v > 0 {
					m.Width = v
				}
			}
		case "PixelYDimension":
			if m.Height == 0 {
				if v, perr := strconv.Atoi(entry.Formatted); perr == nil && v > 0 {
					m.Height = v
				}
			}
		}
	}

	return m, nil
}
