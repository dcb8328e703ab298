// Package validate checks command line inputs before any network call is made.
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"regexp"
	"strconv"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/stopwords"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/storage"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrMaskNotFound = errors.New("mask image not found")
	ErrMaskNotImage = errors.New("mask is not an image")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidWidth = errors.New("invalid contour width")

	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	files    = &storage.Storage{}
)

func StopwordsFile(path string) error {
	if !files.HasFile(path) {
		return fmt.Errorf("%w: the stopwords file %s could not be found", stopwords.ErrFileNotFound, path)
	}
	return nil
}

// MaskImage decodes the mask so a broken file is reported up front.
// PNG, JPEG, GIF, BMP, TIFF and WebP are accepted.
func MaskImage(path string) (image.Image, error) {
	data, err := files.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no file found at %s", ErrMaskNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open mask: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s not identified as an image", ErrMaskNotImage, path)
	}
	return img, nil
}

// Color accepts a CSS/matplotlib color name ("gold", "darkslategray") or
// a hex value of the form #rrggbb.
func Color(s string) (color.Color, error) {
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if hexColor.MatchString(s) {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
		}
	}
	return nil, fmt.Errorf("%w %q: must be a color name or an rgb value of the format #rrggbb (quote it on the command line)", ErrInvalidColor, s)
}

func ContourWidth(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d, must be 0 or more", ErrInvalidWidth, n)
	}
	return nil
}
