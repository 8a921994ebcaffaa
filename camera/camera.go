package camera

import (
	"math"

	"row-major/phong/ray"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

// Camera projects an HSize x VSize pixel grid onto the plane z = -1 of camera
// space.  FieldOfView is the angle, in radians, subtended by the longer side
// of the grid.
type Camera struct {
	HSize, VSize int
	FieldOfView  float64

	transform  matrix.T
	inverse    matrix.T
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

func New(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   matrix.Identity(4),
		inverse:     matrix.Identity(4),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = 2 * c.halfWidth / float64(hsize)

	return c
}

// Transform is the view transform, taking world space to camera space.
func (c *Camera) Transform() matrix.T {
	return c.transform
}

// SetTransform replaces the view transform.  A singular matrix is rejected
// and leaves the camera unchanged.
func (c *Camera) SetTransform(m matrix.T) error {
	inv, err := matrix.Inverse(m)
	if err != nil {
		return err
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// PixelSize is the world-space size of one pixel on the canvas plane.
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// RayForPixel returns the world-space ray through the center of pixel (px,
// py).  Pixel (0, 0) is the top-left corner.
func (c *Camera) RayForPixel(px, py int) ray.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left.
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := matrix.MulMT(c.inverse, tuple.Point(worldX, worldY, -1))
	origin := matrix.MulMT(c.inverse, tuple.Point(0, 0, 0))
	direction := tuple.Normalize(tuple.SubTT(pixel, origin))

	return ray.New(origin, direction)
}
