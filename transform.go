package pie

import "math"

// Affine matrices are stored column-major as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// singularDet is the determinant below which a matrix is treated as
// non-invertible, e.g. a slice group scaled to zero.
const singularDet = 1e-12

// computeLocalTransform builds n's matrix from its fields, applied as
// pivot offset, scale, rotation, then position.
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	a, b := cos*n.ScaleX, sin*n.ScaleX
	c, d := -sin*n.ScaleY, cos*n.ScaleY
	return [6]float64{
		a, b, c, d,
		n.X - a*n.PivotX - c*n.PivotY,
		n.Y - b*n.PivotX - d*n.PivotY,
	}
}

// multiplyAffine returns p·c, so c is applied first.
func multiplyAffine(p, c [6]float64) [6]float64 {
	var out [6]float64
	out[0] = p[0]*c[0] + p[2]*c[1]
	out[1] = p[1]*c[0] + p[3]*c[1]
	out[2] = p[0]*c[2] + p[2]*c[3]
	out[3] = p[1]*c[2] + p[3]*c[3]
	out[4], out[5] = transformPoint(p, c[4], c[5])
	return out
}

// invertAffine returns the inverse of m, or the identity when m is
// singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < singularDet {
		return identityTransform
	}
	inv := [6]float64{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det, 0, 0}
	inv[4] = -(inv[0]*m[4] + inv[2]*m[5])
	inv[5] = -(inv[1]*m[4] + inv[3]*m[5])
	return inv
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform refreshes worldTransform and worldAlpha for n and its
// subtree. Clean nodes keep their cached values unless force is set, which
// happens whenever an ancestor was recomputed.
func updateWorldTransform(n *Node, parent [6]float64, parentAlpha float64, force bool) {
	if n.transformDirty || force {
		n.worldTransform = multiplyAffine(parent, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
		force = true
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, force)
	}
}

// SetPosition moves n within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetRotation sets the rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the local point that scale and rotation act around.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.transformDirty = true
}

// SetAlpha sets n's own opacity. World alpha is the product along the path
// from the root, so dimming a slice group also dims its labels.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces n's world values to be recomputed on the next update.
// Call it after assigning transform fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal maps a world point into n's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld maps a point in n's local space to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldAlpha returns the alpha accumulated from the root as of the last
// update.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}
