package background

import "github.com/lcafoundry/lcicore/sparsemat"

// Solve computes the Leontief series total = sum_{k=0}^{∞} (aStar^k)·ad by
// repeated sparse matrix-vector multiplication, stopping once the
// relative size of the latest increment falls below threshold, or once
// maxIter rounds have run (in which case it still returns its best total,
// alongside ErrDidNotConverge).
func Solve(aStar *sparsemat.COO, ad []float64, threshold float64, maxIter int) ([]float64, error) {
	if len(ad) != aStar.Cols {
		return nil, ErrDimensionMismatch
	}

	total := make([]float64, len(ad))
	x := make([]float64, len(ad))
	copy(x, ad)
	var sumTotal float64

	for i := 0; i < maxIter; i++ {
		addInto(total, x)
		next, err := aStar.MulVec(x)
		if err != nil {
			return nil, err
		}
		inc := norm1(next)
		if inc == 0 {
			return total, nil
		}
		sumTotal += inc
		x = next

		if inc/sumTotal < threshold {
			return total, nil
		}
	}
	return total, ErrDidNotConverge
}

func addInto(dst, src []float64) {
	for i, v := range src {
		dst[i] += v
	}
}

func norm1(x []float64) float64 {
	var sum float64
	for _, v := range x {
		if v < 0 {
			sum -= v
		} else {
			sum += v
		}
	}
	return sum
}
