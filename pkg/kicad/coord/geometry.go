package coord

// Point is a 2D position in the KiCad coordinate system.
// Y grows downward, matching the file format.
type Point struct {
	X Coord
	Y Coord
}

// Pt builds a Point from millimeter values.
func Pt(xMm, yMm float64) Point {
	return Point{X: FromMm(xMm), Y: FromMm(yMm)}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// BoundingBox is an axis-aligned rectangle. A freshly constructed empty
// box has Min > Max so that the first Expand sets both corners.
type BoundingBox struct {
	Min Point
	Max Point
}

const boxSentinel Coord = 1 << 62

// NewBoundingBox creates an empty bounding box.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: boxSentinel, Y: boxSentinel},
		Max: Point{X: -boxSentinel, Y: -boxSentinel},
	}
}

// IsEmpty checks if the bounding box contains no area.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand grows the bounding box to include a point.
func (bb *BoundingBox) Expand(p Point) {
	bb.Min.X = Min(bb.Min.X, p.X)
	bb.Min.Y = Min(bb.Min.Y, p.Y)
	bb.Max.X = Max(bb.Max.X, p.X)
	bb.Max.Y = Max(bb.Max.Y, p.Y)
}

// ExpandBox grows the bounding box to include another box.
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflate grows the box outward by d on every side.
func (bb *BoundingBox) Inflate(d Coord) {
	if bb.IsEmpty() {
		return
	}
	bb.Min.X -= d
	bb.Min.Y -= d
	bb.Max.X += d
	bb.Max.Y += d
}

// Contains checks if a point is within the bounding box.
func (bb BoundingBox) Contains(p Point) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}

// Intersects checks if two bounding boxes overlap.
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Width returns the horizontal extent of the box.
func (bb BoundingBox) Width() Coord {
	return bb.Max.X - bb.Min.X
}

// Height returns the vertical extent of the box.
func (bb BoundingBox) Height() Coord {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Point {
	return Point{
		X: (bb.Min.X + bb.Max.X) / 2,
		Y: (bb.Min.Y + bb.Max.Y) / 2,
	}
}
