package svgflat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTranslations(t *testing.T) {
	c := Default()
	v := c.MergeTranslations(TranslateOp{TX: n("10")}, TranslateOp{TX: n("5"), TY: n("5")})
	require.True(t, v.Verified)
	assert.Equal(t, "15", v.Value.TX.String())
	assert.Equal(t, "5", v.Value.TY.String())
}

func TestMergeScales(t *testing.T) {
	c := Default()
	v := c.MergeScales(ScaleOp{SX: Two, SY: Two}, ScaleOp{SX: n("3"), SY: n("0.5")})
	require.True(t, v.Verified)
	assert.Zero(t, v.Value.SX.Cmp(n("6")))
	assert.Zero(t, v.Value.SY.Cmp(One))
}

func TestMergeRotations(t *testing.T) {
	c := Default()
	deg := func(s string) Num { return c.Radians(n(s)) }

	v, err := c.MergeRotations(Rotation(deg("30")), Rotation(deg("60")))
	require.NoError(t, err)
	require.True(t, v.Verified)
	assertNear(t, "angle", c.Degrees(v.Value.Angle), "90", fine)

	// the summed angle is normalized
	v, err = c.MergeRotations(Rotation(deg("170")), Rotation(deg("100")))
	require.NoError(t, err)
	assertNear(t, "angle", c.Degrees(v.Value.Angle), "-90", fine)

	// same center merges and keeps the center
	v, err = c.MergeRotations(RotationAbout(deg("10"), n("5"), n("5")), RotationAbout(deg("20"), n("5"), n("5")))
	require.NoError(t, err)
	require.NotNil(t, v.Value.Center)
	assertNear(t, "angle", c.Degrees(v.Value.Angle), "30", fine)

	_, err = c.MergeRotations(Rotation(deg("10")), RotationAbout(deg("20"), n("5"), n("5")))
	assert.True(t, errors.Is(err, ErrOffOriginRotation))
}

func TestShortRotate(t *testing.T) {
	c := Default()
	v, err := c.ShortRotate(n("10"), n("20"), c.Radians(n("45")), n("10"), n("20"))
	require.NoError(t, err)
	require.True(t, v.Verified)
	require.NotNil(t, v.Value.Center)
	assert.Zero(t, v.Value.Center.X.Cmp(n("10")))
	assert.Zero(t, v.Value.Center.Y.Cmp(n("20")))

	_, err = c.ShortRotate(n("10"), n("20"), c.Radians(n("45")), n("10"), n("21"))
	assert.ErrorIs(t, err, ErrNotRotateAboutPoint)
}

func TestMergeReferenceValues(t *testing.T) {
	c := Default()
	quarter := c.Quo(c.Pi(), n("4"))

	tests := []struct {
		name  string
		run   func() (NamedTransform, bool, error)
		check func(t *testing.T, got NamedTransform)
	}{
		{"translations", func() (NamedTransform, bool, error) {
			v := c.MergeTranslations(TranslateOp{TX: n("5"), TY: n("10")}, TranslateOp{TX: n("3"), TY: n("-2")})
			return v.Value, v.Verified, nil
		}, func(t *testing.T, got NamedTransform) {
			tr := got.(TranslateOp)
			assert.Zero(t, tr.TX.Cmp(n("8")))
			assert.Zero(t, tr.TY.Cmp(n("8")))
		}},
		{"scales", func() (NamedTransform, bool, error) {
			v := c.MergeScales(ScaleOp{SX: n("2"), SY: n("3")}, ScaleOp{SX: n("1.5"), SY: n("0.5")})
			return v.Value, v.Verified, nil
		}, func(t *testing.T, got NamedTransform) {
			s := got.(ScaleOp)
			assert.Zero(t, s.SX.Cmp(n("3")))
			assert.Zero(t, s.SY.Cmp(n("1.5")))
		}},
		{"rotations", func() (NamedTransform, bool, error) {
			v, err := c.MergeRotations(Rotation(quarter), Rotation(quarter))
			return v.Value, v.Verified, err
		}, func(t *testing.T, got NamedTransform) {
			r := got.(RotateOp)
			assert.Nil(t, r.Center)
			assert.True(t, c.Near(r.Angle, c.Quo(c.Pi(), Two), c.Epsilon()), "angle %s", r.Angle)
		}},
		{"rotate about point", func() (NamedTransform, bool, error) {
			v, err := c.ShortRotate(n("100"), n("50"), quarter, n("100"), n("50"))
			return v.Value, v.Verified, err
		}, func(t *testing.T, got NamedTransform) {
			r := got.(RotateOp)
			require.NotNil(t, r.Center)
			assert.Zero(t, r.Angle.Cmp(quarter))
			assert.Zero(t, r.Center.X.Cmp(n("100")))
			assert.Zero(t, r.Center.Y.Cmp(n("50")))
			want := c.MultiplyAll(Translate(n("100"), n("50")), c.Rotate(quarter), Translate(n("-100"), n("-50")))
			assertMatrixNear(t, r.Matrix(c), want, c.Epsilon())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, verified, err := tt.run()
			require.NoError(t, err)
			require.True(t, verified)
			tt.check(t, got)
		})
	}
}

func TestDowngradeMatrix(t *testing.T) {
	c := Default()

	v, ok := c.DowngradeMatrix(Translate(n("3"), n("4")))
	require.True(t, ok)
	assert.IsType(t, TranslateOp{}, v.Value)

	v, ok = c.DowngradeMatrix(Scale(n("2"), n("-3")))
	require.True(t, ok)
	assert.IsType(t, ScaleOp{}, v.Value)

	v, ok = c.DowngradeMatrix(c.Rotate(c.Radians(n("30"))))
	require.True(t, ok)
	r, isRot := v.Value.(RotateOp)
	require.True(t, isRot)
	assert.Nil(t, r.Center)

	// rotation about (10, 10) written as a matrix
	m := c.RotateAbout(c.Radians(n("90")), n("10"), n("10"))
	v, ok = c.DowngradeMatrix(m)
	require.True(t, ok)
	r, isRot = v.Value.(RotateOp)
	require.True(t, isRot)
	require.NotNil(t, r.Center)
	assertNear(t, "cx", r.Center.X, "10", n("1e-18"))
	assertNear(t, "cy", r.Center.Y, "10", n("1e-18"))
	assertNear(t, "angle", c.Degrees(r.Angle), "90", n("1e-18"))

	_, ok = c.DowngradeMatrix(m6("1", "0", "0.5", "1", "0", "0"))
	assert.False(t, ok, "a shear has no simpler form")
}

func TestOptimizeTransforms(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"drop identities", "translate(0) scale(1) rotate(360) translate(5)", "translate(5)"},
		{"merge translations", "translate(10) translate(5,5)", "translate(15,5)"},
		{"merge scales", "scale(2) scale(3,4)", "scale(6,8)"},
		{"merge rotations", "rotate(30) rotate(60)", "rotate(90)"},
		{"cancel rotations", "rotate(30) rotate(-30) scale(2)", "scale(2)"},
		{"different centers stay", "rotate(30) rotate(30,5,5)", "rotate(30) rotate(30,5,5)"},
		{"rotate about point", "translate(10,20) rotate(45) translate(-10,-20)", "rotate(45,10,20)"},
		{"downgrade matrix", "matrix(1 0 0 1 7 8)", "translate(7,8)"},
		{"downgrade then merge", "matrix(1 0 0 1 7 8) translate(1,1)", "translate(8,9)"},
		{"keep shear", "skewX(45)", "matrix(1,0,1,1,0,0)"},
		{"everything cancels", "translate(5) translate(-5)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, diags := c.ParseTransformList(tt.in)
			require.Empty(t, diags)

			res := c.OptimizeTransforms(list)
			assert.True(t, res.Verified, "max error %s", res.MaxError)
			assert.Equal(t, tt.want, c.FormatTransforms(res.Transforms, 3))

			// optimizing the output again changes nothing
			again := c.OptimizeTransforms(res.Transforms)
			assert.Zero(t, again.OptimizationCount)
			assert.Equal(t, len(res.Transforms), len(again.Transforms))
		})
	}
}

func TestOptimizeCountsRewrites(t *testing.T) {
	c := Default()
	list, _ := c.ParseTransformList("scale(1) translate(1) translate(2) translate(3)")
	res := c.OptimizeTransforms(list)
	assert.Equal(t, 3, res.OptimizationCount)
	assert.Len(t, res.Transforms, 1)
}

func TestIsIdentityTransform(t *testing.T) {
	c := Default()
	assert.True(t, c.IsIdentityTransform(TranslateOp{}))
	assert.True(t, c.IsIdentityTransform(ScaleOp{SX: One, SY: One}))
	assert.True(t, c.IsIdentityTransform(Rotation(c.Radians(n("-360")))))
	assert.True(t, c.IsIdentityTransform(MatrixOp{M: Identity()}))
	assert.False(t, c.IsIdentityTransform(ScaleOp{SX: One, SY: Two}))
	assert.False(t, c.IsIdentityTransform(RotationAbout(c.Radians(n("1")), One, One)))
}
