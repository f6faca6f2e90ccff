package dataset

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Sample is one decoded frame with its label.
type Sample struct {
	Image image.Image
	Label int
	Path  string
}

// Loader decodes the image stored at a path.
type Loader interface {
	Load(path string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (image.Image, error)

func (f LoaderFunc) Load(path string) (image.Image, error) {
	return f(path)
}

// ImageLoader decodes any format registered with the image package and
// applies EXIF orientation.
type ImageLoader struct{}

func (ImageLoader) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image '%s': %w", path, err)
	}
	return img, nil
}

// Transform is applied to every decoded image.
type Transform func(image.Image) image.Image

// Resize scales an image to width x height. A zero dimension keeps the
// aspect ratio.
func Resize(width, height int) Transform {
	return func(img image.Image) image.Image {
		return imaging.Resize(img, width, height, imaging.Lanczos)
	}
}

// CenterCrop cuts a width x height rectangle from the image center.
func CenterCrop(width, height int) Transform {
	return func(img image.Image) image.Image {
		return imaging.CropCenter(img, width, height)
	}
}

// Chain applies transforms in order.
func Chain(transforms ...Transform) Transform {
	return func(img image.Image) image.Image {
		for _, t := range transforms {
			if t != nil {
				img = t(img)
			}
		}
		return img
	}
}

// ItemOptions control how samples are materialized.
type ItemOptions struct {
	Loader    Loader
	Transform Transform
}

func (o ItemOptions) load(path string, label int) (Sample, error) {
	loader := o.Loader
	if loader == nil {
		loader = ImageLoader{}
	}
	img, err := loader.Load(path)
	if err != nil {
		return Sample{}, err
	}
	if o.Transform != nil {
		img = o.Transform(img)
	}
	return Sample{Image: img, Label: label, Path: path}, nil
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, length)
	}
	return nil
}
