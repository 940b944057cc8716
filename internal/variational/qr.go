package variational

import "math"

// ReorthonormalizeMGS produces an orthonormal (column-wise) Q and
// upper-triangular R such that a = Q*R, using modified Gram-Schmidt.
// a may be tall (more rows than columns, the shape Phi takes whenever
// d_var < d_state's ambient dimension); Q has the same shape as a and R
// is square in the column count. This is the numerically stable form
// and the one production code should default to.
func ReorthonormalizeMGS(a [][]float64) (q, r [][]float64) {
	rows, cols := len(a), len(a[0])
	v := cloneMatrix(a)
	q = zeroMatrix(rows, cols)
	r = zeroMatrix(cols, cols)

	for k := 0; k < cols; k++ {
		norm := columnNorm(v, k)
		r[k][k] = norm
		setColumn(q, k, scaleColumn(getColumn(v, k), 1.0/safeguard(norm)))

		for j := k + 1; j < cols; j++ {
			proj := dotColumns(getColumn(q, k), getColumn(v, j))
			r[k][j] = proj
			subtractScaledColumn(v, j, getColumn(q, k), proj)
		}
	}
	return q, r
}

// ReorthonormalizeCGS is ReorthonormalizeMGS's classical-Gram-Schmidt
// counterpart: every projection is taken against the original columns
// of a rather than the partially-updated working copy, which is
// faster but less stable. Both variants are kept so a caller can trade
// stability for speed.
func ReorthonormalizeCGS(a [][]float64) (q, r [][]float64) {
	rows, cols := len(a), len(a[0])
	q = zeroMatrix(rows, cols)
	r = zeroMatrix(cols, cols)

	for k := 0; k < cols; k++ {
		v := getColumn(a, k)
		for j := 0; j < k; j++ {
			qj := getColumn(q, j)
			proj := dotColumns(qj, getColumn(a, k))
			r[j][k] = proj
			v = subtractColumns(v, scaleColumn(qj, proj))
		}
		norm := vectorNorm(v)
		r[k][k] = norm
		setColumn(q, k, scaleColumn(v, 1.0/safeguard(norm)))
	}
	return q, r
}

func safeguard(norm float64) float64 {
	if norm == 0 {
		return 1
	}
	return norm
}

func zeroMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func getColumn(a [][]float64, j int) []float64 {
	col := make([]float64, len(a))
	for i := range a {
		col[i] = a[i][j]
	}
	return col
}

func setColumn(a [][]float64, j int, col []float64) {
	for i := range a {
		a[i][j] = col[i]
	}
}

func columnNorm(a [][]float64, j int) float64 { return vectorNorm(getColumn(a, j)) }

func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

func dotColumns(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func scaleColumn(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = c * f
	}
	return out
}

func subtractColumns(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func subtractScaledColumn(a [][]float64, j int, basis []float64, scale float64) {
	for i := range a {
		a[i][j] -= basis[i] * scale
	}
}
