package core

import (
	"math"
	"math/rand"
)

// SampleCosineDirection generates a cosine-weighted direction in the local
// hemisphere around +Z. Callers rotate it into a surface frame with an ONB.
func SampleCosineDirection(rng *rand.Rand) Vec3 {
	r1 := rng.Float64()
	r2 := rng.Float64()

	phi := 2.0 * math.Pi * r1
	sqrtR2 := math.Sqrt(r2)

	x := math.Cos(phi) * sqrtR2
	y := math.Sin(phi) * sqrtR2
	z := math.Sqrt(1.0 - r2)

	return NewVec3(x, y, z)
}

// SampleUnitSphere picks a uniform random point on the unit sphere.
//
// Sampling three Gaussian coordinates and normalizing distributes points
// uniformly; sampling uniform coordinates directly would cluster them toward
// the corners of the cube.
// Reference: http://mathworld.wolfram.com/SpherePointPicking.html
func SampleUnitSphere(rng *rand.Rand) Vec3 {
	x := rng.NormFloat64()
	y := rng.NormFloat64()
	z := rng.NormFloat64()

	return NewVec3(x, y, z).Normalize()
}

// SampleUnitDisk picks a uniform random point in the unit disk on the XY
// plane (used for thin-lens depth of field).
func SampleUnitDisk(rng *rand.Rand) Vec3 {
	r := math.Sqrt(rng.Float64())
	phi := 2.0 * math.Pi * rng.Float64()
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), 0)
}

// SampleToSphere samples a direction within the cone subtended by a sphere of
// the given radius at distanceSquared from the cone apex, in the local frame
// around +Z.
func SampleToSphere(radius, distanceSquared float64, rng *rand.Rand) Vec3 {
	r1 := rng.Float64()
	r2 := rng.Float64()

	cosThetaMax := math.Sqrt(math.Max(0, 1.0-radius*radius/distanceSquared))
	z := 1.0 + r2*(cosThetaMax-1.0)

	phi := 2.0 * math.Pi * r1
	sinTheta := math.Sqrt(math.Max(0, 1.0-z*z))

	x := math.Cos(phi) * sinTheta
	y := math.Sin(phi) * sinTheta

	return NewVec3(x, y, z)
}
