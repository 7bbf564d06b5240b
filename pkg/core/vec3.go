package core

import "math"

// Vec3 represents a 3D vector. It doubles as a point and as an RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// Color is a Vec3 holding linear RGB channel values, nominally in [0,1]
type Color = Vec3

// Point is a Vec3 holding a position or a direction
type Point = Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar. Dividing by zero is the caller's problem.
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// AddAssign adds other to v in place
func (v *Vec3) AddAssign(other Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// SubtractAssign subtracts other from v in place
func (v *Vec3) SubtractAssign(other Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

// MultiplyAssign scales v in place
func (v *Vec3) MultiplyAssign(scalar float64) {
	v.X *= scalar
	v.Y *= scalar
	v.Z *= scalar
}

// DivideAssign divides v by a scalar in place
func (v *Vec3) DivideAssign(scalar float64) {
	v.X /= scalar
	v.Y /= scalar
	v.Z /= scalar
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Project returns the vector projection of v onto onto.
// onto must not be zero length.
func (v Vec3) Project(onto Vec3) Vec3 {
	return onto.Multiply(v.Dot(onto) / onto.LengthSquared())
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Lerp linearly interpolates between v (t=0) and other (t=1)
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Multiply(1.0 - t).Add(other.Multiply(t))
}
