// Package cache provides a small generic LRU cache.
//
// The text package keeps one Cache per Face for rasterized glyph masks, so
// each digit is rendered once per size instead of once per grid cell.
//
//	c := cache.New[rune, *mask](16)
//	m, err := c.GetOrCreate('0', func() (*mask, error) { return render('0') })
package cache
