package parallel

// minBandRows keeps bands large enough that scheduling cost stays small
// next to the per-row work.
const minBandRows = 16

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// SplitRows divides height rows into at most n contiguous bands of nearly
// equal size. Bands never overlap and together cover every row.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if maxBands := (height + minBandRows - 1) / minBandRows; n > maxBands {
		n = maxBands
	}

	bands := make([]Band, 0, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}

// ForEachBand runs fn once per band of height rows on the pool and waits
// for all bands to finish. fn must only touch rows inside its band.
func (p *WorkerPool) ForEachBand(height int, fn func(b Band)) {
	bands := SplitRows(height, p.workers*2)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.Run(work)
}
