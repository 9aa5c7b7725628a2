package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestConfigurationDistance(t *testing.T) {
	a := Configuration{0, 0}
	b := Configuration{3, 4}
	test.That(t, a.Distance(b), test.ShouldAlmostEqual, 5)
	test.That(t, b.Distance(a), test.ShouldAlmostEqual, 5)
	test.That(t, a.Distance(a), test.ShouldEqual, 0)
	test.That(t, math.IsInf(a.Distance(Configuration{1, 2, 3}), 1), test.ShouldBeTrue)
	test.That(t, a.Dims(), test.ShouldEqual, 2)
}

func TestInterpolate(t *testing.T) {
	a := Configuration{0, 2}
	b := Configuration{4, -2}
	test.That(t, a.Interpolate(b, 0.5), test.ShouldResemble, Configuration{2, 0})
	test.That(t, a.Interpolate(b, 0.25), test.ShouldResemble, Configuration{1, 1})
	test.That(t, a.Interpolate(b, 1).AlmostEqual(b, 1e-9), test.ShouldBeTrue)
}

func TestCloneIsDeep(t *testing.T) {
	vals := []float64{1, 2}
	q := FloatsToConfiguration(vals)
	vals[0] = 5
	test.That(t, q[0], test.ShouldEqual, 1)

	p := Path{q, {3, 4}}
	cp := p.Clone()
	cp[0][1] = 9
	test.That(t, p[0][1], test.ShouldEqual, 2)
	test.That(t, Configuration(nil).Clone(), test.ShouldBeNil)
}

func TestPathLength(t *testing.T) {
	p := Path{{0, 0}, {3, 4}, {3, 5}}
	test.That(t, p.Length(), test.ShouldAlmostEqual, 6)
	test.That(t, math.IsInf(Path{{0, 0}}.Length(), 1), test.ShouldBeTrue)
	test.That(t, p.Floats(), test.ShouldResemble, [][]float64{{0, 0}, {3, 4}, {3, 5}})
	test.That(t, Path{{1, 2}, {3, 4}}.String(), test.ShouldEqual, "(1.0000, 2.0000) -> (3.0000, 4.0000)")
}

func TestLimits(t *testing.T) {
	limits := []Limit{{-1, 1}, {0, 10}}
	test.That(t, ConfigurationInLimits(Configuration{0, 10}, limits), test.ShouldBeTrue)
	test.That(t, ConfigurationInLimits(Configuration{-1.5, 5}, limits), test.ShouldBeFalse)
	test.That(t, ConfigurationInLimits(Configuration{0}, limits), test.ShouldBeFalse)

	//nolint:gosec
	rSeed := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		q := RandomConfiguration(limits, rSeed)
		test.That(t, q.Dims(), test.ShouldEqual, 2)
		test.That(t, ConfigurationInLimits(q, limits), test.ShouldBeTrue)
	}

	lo, hi := Limit{math.Inf(-1), math.Inf(1)}.Range()
	test.That(t, lo, test.ShouldEqual, -999)
	test.That(t, hi, test.ShouldEqual, 999)
}

func TestErrors(t *testing.T) {
	test.That(t, NewIncorrectDimensionError(2, 3), test.ShouldBeError,
		"number of coordinates given (2) does not match number of dimensions (3)")
	test.That(t, NewEmptyConfigurationError("start").Error(), test.ShouldContainSubstring, "start")
}
