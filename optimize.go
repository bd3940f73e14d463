package svgflat

import (
	"fmt"
	"slices"
)

// maxOptimizePasses bounds the rewrite loop. Every rewrite strictly
// simplifies the list, so the loop settles long before this.
const maxOptimizePasses = 16

// OptimizeResult is the outcome of OptimizeTransforms.
type OptimizeResult struct {
	// Transforms is the optimized list.
	Transforms []NamedTransform

	// OptimizationCount is the number of accepted rewrites. Running the
	// optimizer on its own output yields zero.
	OptimizationCount int

	// Verified compares the combined matrix of Transforms with that of the
	// input list; MaxError is the largest element-wise difference.
	Verified bool
	MaxError Num

	// Diagnostics lists rewrites that were rejected by their local check.
	Diagnostics Diagnostics
}

// IsIdentityTransform reports whether t has no effect, within epsilon.
func (c *Context) IsIdentityTransform(t NamedTransform) bool {
	switch op := t.(type) {
	case TranslateOp:
		return c.NearZero(op.TX) && c.NearZero(op.TY)
	case RotateOp:
		return c.NearZero(c.NormalizeAngle(op.Angle))
	case ScaleOp:
		return c.Near(op.SX, One, c.epsilon) && c.Near(op.SY, One, c.epsilon)
	case MatrixOp:
		return c.IsIdentity(op.M)
	}
	return false
}

// MergeTranslations combines translate(a) · translate(b).
func (c *Context) MergeTranslations(a, b TranslateOp) Verified[TranslateOp] {
	merged := TranslateOp{TX: c.Add(a.TX, b.TX), TY: c.Add(a.TY, b.TY)}
	return verify(c, merged, merged.Matrix(c), c.Multiply(a.Matrix(c), b.Matrix(c)))
}

// MergeScales combines scale(a) · scale(b).
func (c *Context) MergeScales(a, b ScaleOp) Verified[ScaleOp] {
	merged := ScaleOp{SX: c.Mul(a.SX, b.SX), SY: c.Mul(a.SY, b.SY)}
	return verify(c, merged, merged.Matrix(c), c.Multiply(a.Matrix(c), b.Matrix(c)))
}

// MergeRotations combines rotate(a) · rotate(b). The summed angle is
// normalized to (-pi, pi]. Both rotations must share a center (the origin
// when absent); otherwise ErrOffOriginRotation is returned, since the
// product of rotations about different points is not a pure rotation about
// either of them.
func (c *Context) MergeRotations(a, b RotateOp) (Verified[RotateOp], error) {
	ca, cb := a.center(), b.center()
	if !c.ApproxVec(ca, cb, c.epsilon) {
		return Verified[RotateOp]{}, ErrOffOriginRotation
	}
	merged := RotateOp{Angle: c.NormalizeAngle(c.Add(a.Angle, b.Angle))}
	if a.Center != nil && !(c.NearZero(ca.X) && c.NearZero(ca.Y)) {
		merged.Center = &Vec2{X: ca.X, Y: ca.Y}
	}
	return verify(c, merged, merged.Matrix(c), c.Multiply(a.Matrix(c), b.Matrix(c))), nil
}

// ShortRotate rewrites translate(tx,ty) · rotate(angle) · translate(-ux,-uy)
// as rotate(angle, tx, ty). It returns ErrNotRotateAboutPoint unless
// (ux, uy) equals (tx, ty) within epsilon.
func (c *Context) ShortRotate(tx, ty, angle, ux, uy Num) (Verified[RotateOp], error) {
	if !c.Near(tx, ux, c.epsilon) || !c.Near(ty, uy, c.epsilon) {
		return Verified[RotateOp]{}, fmt.Errorf("%w: translate(%s,%s) vs translate(-%s,-%s)",
			ErrNotRotateAboutPoint, tx, ty, ux, uy)
	}
	short := RotationAbout(angle, tx, ty)
	long := c.MultiplyAll(Translate(tx, ty), c.Rotate(angle), Translate(ux.Neg(), uy.Neg()))
	return verify(c, short, short.Matrix(c), long), nil
}

// DowngradeMatrix rewrites m as the simplest equivalent primitive: a
// translation, a scale about the origin, or a rotation (about the origin,
// or about the fixed point when m also translates). It returns false when
// m is none of these or the rewrite fails verification.
func (c *Context) DowngradeMatrix(m Matrix) (Verified[NamedTransform], bool) {
	var op NamedTransform
	switch {
	case c.IsTranslation(m):
		op = TranslateOp{TX: m.E, TY: m.F}
	case c.IsScale(m):
		op = ScaleOp{SX: m.A, SY: m.D}
	case c.IsRigid(m):
		theta := c.Atan2(m.B, m.A)
		if c.NearZero(m.E) && c.NearZero(m.F) {
			op = Rotation(theta)
			break
		}
		// Fixed point of x -> Rx + t solves (I - R) c = t.
		oneMinusCos := c.Sub(One, m.A)
		sin := m.B
		det := c.Add(c.Mul(oneMinusCos, oneMinusCos), c.Mul(sin, sin))
		if c.NearZero(det) {
			return Verified[NamedTransform]{}, false
		}
		cx := c.Quo(c.Sub(c.Mul(oneMinusCos, m.E), c.Mul(sin, m.F)), det)
		cy := c.Quo(c.Add(c.Mul(sin, m.E), c.Mul(oneMinusCos, m.F)), det)
		op = RotationAbout(theta, cx, cy)
	default:
		return Verified[NamedTransform]{}, false
	}
	v := verify(c, op, op.Matrix(c), m)
	return v, v.Verified
}

// OptimizeTransforms simplifies a transform list without changing its
// combined matrix:
//
//  1. identity operations are dropped;
//  2. adjacent translations, scales and same-center rotations merge;
//  3. translate(t) · rotate(a) · translate(-t) becomes rotate(a, tx, ty);
//  4. matrix entries are downgraded to the simplest primitive;
//  5. identities created by 2-4 are dropped.
//
// Every rewrite is checked locally against the sub-product it replaces and
// skipped if the check fails. The pass repeats until nothing changes.
func (c *Context) OptimizeTransforms(list []NamedTransform) OptimizeResult {
	res := OptimizeResult{}
	work := slices.Clone(list)

	for pass := 0; pass < maxOptimizePasses; pass++ {
		changed := 0
		var n int
		work, n = c.removeIdentities(work)
		changed += n
		work, n = c.mergeAdjacent(work, &res.Diagnostics)
		changed += n
		work, n = c.collapseRotateAboutPoint(work, &res.Diagnostics)
		changed += n
		work, n = c.downgradeMatrices(work, &res.Diagnostics)
		changed += n
		work, n = c.removeIdentities(work)
		changed += n

		res.OptimizationCount += changed
		if changed == 0 {
			break
		}
	}

	res.Transforms = work
	res.MaxError = c.MaxDiff(c.ListMatrix(work), c.ListMatrix(list))
	res.Verified = res.MaxError.Cmp(c.tolerance) < 0
	if !res.Verified {
		Logger().Warn("svgflat: optimized transform list failed verification",
			"maxError", res.MaxError.String())
	}
	return res
}

func (c *Context) removeIdentities(list []NamedTransform) ([]NamedTransform, int) {
	out := list[:0:0]
	removed := 0
	for _, t := range list {
		if c.IsIdentityTransform(t) {
			removed++
			continue
		}
		out = append(out, t)
	}
	return out, removed
}

// mergePair merges two adjacent operations of the same kind.
func (c *Context) mergePair(a, b NamedTransform) (NamedTransform, bool) {
	switch x := a.(type) {
	case TranslateOp:
		if y, ok := b.(TranslateOp); ok {
			v := c.MergeTranslations(x, y)
			return v.Value, v.Verified
		}
	case ScaleOp:
		if y, ok := b.(ScaleOp); ok {
			v := c.MergeScales(x, y)
			return v.Value, v.Verified
		}
	case RotateOp:
		if y, ok := b.(RotateOp); ok {
			v, err := c.MergeRotations(x, y)
			if err != nil {
				return nil, false
			}
			return v.Value, v.Verified
		}
	}
	return nil, false
}

func (c *Context) mergeAdjacent(list []NamedTransform, diags *Diagnostics) ([]NamedTransform, int) {
	if len(list) < 2 {
		return list, 0
	}
	out := make([]NamedTransform, 0, len(list))
	merged := 0
	for _, t := range list {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if sameKind(prev, t) {
				if m, ok := c.mergePair(prev, t); ok {
					out[len(out)-1] = m
					merged++
					continue
				}
				if _, isRot := t.(RotateOp); !isRot {
					diags.add(SeverityInformational, CodeNotVerified,
						"merge of adjacent %T entries rejected by verification", t)
					Logger().Debug("svgflat: merge skipped", "kind", fmt.Sprintf("%T", t))
				}
			}
		}
		out = append(out, t)
	}
	return out, merged
}

func sameKind(a, b NamedTransform) bool {
	switch a.(type) {
	case TranslateOp:
		_, ok := b.(TranslateOp)
		return ok
	case ScaleOp:
		_, ok := b.(ScaleOp)
		return ok
	case RotateOp:
		_, ok := b.(RotateOp)
		return ok
	}
	return false
}

func (c *Context) collapseRotateAboutPoint(list []NamedTransform, diags *Diagnostics) ([]NamedTransform, int) {
	if len(list) < 3 {
		return list, 0
	}
	out := make([]NamedTransform, 0, len(list))
	collapsed := 0
	for i := 0; i < len(list); i++ {
		if i+2 < len(list) {
			t1, ok1 := list[i].(TranslateOp)
			r, ok2 := list[i+1].(RotateOp)
			t2, ok3 := list[i+2].(TranslateOp)
			if ok1 && ok2 && ok3 && r.Center == nil {
				v, err := c.ShortRotate(t1.TX, t1.TY, r.Angle, t2.TX.Neg(), t2.TY.Neg())
				if err == nil && v.Verified {
					out = append(out, v.Value)
					collapsed++
					i += 2
					continue
				}
				if err == nil {
					diags.add(SeverityInformational, CodeNotVerified,
						"rotate-about-point rewrite rejected, max error %s", v.MaxError)
					Logger().Debug("svgflat: rotate-about-point skipped", "maxError", v.MaxError.String())
				}
			}
		}
		out = append(out, list[i])
	}
	return out, collapsed
}

func (c *Context) downgradeMatrices(list []NamedTransform, diags *Diagnostics) ([]NamedTransform, int) {
	out := make([]NamedTransform, len(list))
	downgraded := 0
	for i, t := range list {
		out[i] = t
		mop, ok := t.(MatrixOp)
		if !ok {
			continue
		}
		v, ok := c.DowngradeMatrix(mop.M)
		if ok {
			out[i] = v.Value
			downgraded++
			continue
		}
		if v.Value != nil {
			diags.add(SeverityInformational, CodeNotVerified,
				"matrix downgrade rejected, max error %s", v.MaxError)
			Logger().Debug("svgflat: matrix downgrade skipped", "maxError", v.MaxError.String())
		}
	}
	return out, downgraded
}
