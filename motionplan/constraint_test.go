package motionplan

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

func TestConstraintHandler(t *testing.T) {
	handler := NewConstraintHandler()
	test.That(t, handler.IsFree(referenceframe.Configuration{5, 5}), test.ShouldBeTrue)

	handler.AddConstraint(defaultLimitsConstraintName, NewLimitsConstraint(squareLimits))
	handler.AddConstraint("square", squareIsFree)
	test.That(t, handler.Constraints(), test.ShouldResemble, []string{defaultLimitsConstraintName, "square"})

	test.That(t, handler.IsFree(referenceframe.Configuration{1.5, 0}), test.ShouldBeTrue)
	test.That(t, handler.IsFree(referenceframe.Configuration{0, 0}), test.ShouldBeFalse)
	test.That(t, handler.IsFree(referenceframe.Configuration{3, 0}), test.ShouldBeFalse)
	test.That(t, handler.CheckConstraints(referenceframe.Configuration{0, 0}), test.ShouldResemble, []string{"square"})
	test.That(t, handler.CheckConstraints(referenceframe.Configuration{3, 0}), test.ShouldResemble, []string{defaultLimitsConstraintName})

	checks, failures := handler.Checks()
	test.That(t, checks, test.ShouldEqual, 4)
	test.That(t, failures, test.ShouldEqual, 2)

	handler.RemoveConstraint("square")
	test.That(t, handler.IsFree(referenceframe.Configuration{0, 0}), test.ShouldBeTrue)
}

func TestObstacleConstraint(t *testing.T) {
	box, err := spatialmath.NewBox(r3.Vector{}, r3.Vector{X: 0.1, Y: 0.5, Z: 0.3}, "cuboid")
	test.That(t, err, test.ShouldBeNil)
	sphere, err := spatialmath.NewSphere(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, 0.1, "ball")
	test.That(t, err, test.ShouldBeNil)

	isFree, err := NewObstacleConstraint([]spatialmath.Geometry{box, sphere}, 0.05, 0.1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, isFree(referenceframe.Configuration{0.2, 0.2, 0.2}), test.ShouldBeTrue)
	test.That(t, isFree(referenceframe.Configuration{-0.2, -0.2, -0.2}), test.ShouldBeTrue)
	// within robot radius plus buffer of the box face at x = 0.05
	test.That(t, isFree(referenceframe.Configuration{0.15, 0, 0}), test.ShouldBeFalse)
	test.That(t, isFree(referenceframe.Configuration{0.21, 0, 0}), test.ShouldBeTrue)
	test.That(t, isFree(referenceframe.Configuration{0.5, 0.5, 0.7}), test.ShouldBeFalse)

	_, err = NewObstacleConstraint(nil, -1, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewObstacleConstraint(nil, 0, -1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUniformSampler(t *testing.T) {
	//nolint:gosec
	sample, err := NewUniformSampler(squareLimits, rand.New(rand.NewSource(1)))
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 100; i++ {
		q := sample()
		test.That(t, q.Dims(), test.ShouldEqual, 2)
		test.That(t, referenceframe.ConfigurationInLimits(q, squareLimits), test.ShouldBeTrue)
	}

	// equal seeds draw equal samples
	//nolint:gosec
	a, _ := NewUniformSampler(squareLimits, rand.New(rand.NewSource(9)))
	//nolint:gosec
	b, _ := NewUniformSampler(squareLimits, rand.New(rand.NewSource(9)))
	test.That(t, a(), test.ShouldResemble, b())

	_, err = NewUniformSampler(nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewUniformSampler([]referenceframe.Limit{{Min: 1, Max: 0}}, nil)
	test.That(t, err, test.ShouldNotBeNil)
}
