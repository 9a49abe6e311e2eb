package api

import (
	"image"
	"vincit.fi/photo-triage/api/apitype"
)

// ImageLoader decodes an item fitted inside width x height. A
// non-positive width or height returns the image in full size.
type ImageLoader interface {
	LoadImage(item *apitype.Item, width int, height int) (image.Image, error)
}
