package correction

import (
	"math"
)

// adjustHommel implements Hommel's closed testing procedure.
//
// Working on the ascending p-values, each pass j = m..2 splits the ranks into
// a head block [0, m-j] and a tail block [m-j+1, m-1]. The tail's Simes
// minimum q1 caps the head, the tail takes the last head value, and pa keeps
// the pointwise maximum over all passes. No adjusted value falls below its raw
// p-value.
func adjustHommel(pValues []float64) ([]float64, error) {
	if err := requireNonEmpty(pValues); err != nil {
		return nil, err
	}

	size := len(pValues)
	o := order(pValues, false)
	p := make([]float64, size)
	for i, idx := range o {
		p[i] = pValues[idx]
	}

	minNPI := math.Inf(1)
	for i := range p {
		npi := p[i] * float64(size) / float64(i+1)
		if npi < minNPI || math.IsNaN(npi) {
			minNPI = npi
		}
	}

	q := make([]float64, size)
	pa := make([]float64, size)
	for i := range q {
		q[i] = minNPI
		pa[i] = minNPI
	}

	for j := size; j >= 2; j-- {
		fj := float64(j)
		head := size - j + 1

		q1 := fj * p[head] / 2.0
		for k := 1; k < j-1; k++ {
			if candidate := p[head+k] * fj / (2.0 + float64(k)); candidate < q1 {
				q1 = candidate
			}
		}

		for i := 0; i < head; i++ {
			q[i] = math.Min(p[i]*fj, q1)
		}
		for i := head; i < size; i++ {
			q[i] = q[head-1]
		}
		for i := range pa {
			if pa[i] < q[i] {
				pa[i] = q[i]
			}
		}
	}

	for i := range pa {
		pa[i] = math.Max(pa[i], p[i])
	}

	return unpermute(pa, o), nil
}
