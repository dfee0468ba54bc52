package pagebreak

// FlexItem is one child's sizing inputs for main-axis distribution, per
// spec.md section 4.4: a flex basis, grow/shrink weights, and a
// min_content floor (the widest word for text, or an explicit min).
type FlexItem struct {
	Basis      float64
	Grow       float64
	Shrink     float64
	MinContent float64
	MinSize    float64 // explicit min-width/min-height, 0 if unset
	MaxSize    float64 // explicit max-width/max-height, 0 means unbounded
}

// Distribute runs the four-step flex distribution algorithm of spec.md
// section 4.4 and returns each item's final main-axis size.
func Distribute(items []FlexItem, mainSize float64) []float64 {
	n := len(items)
	sizes := make([]float64, n)
	var sumBasis float64
	for i, it := range items {
		sizes[i] = it.Basis
		sumBasis += it.Basis
	}

	switch {
	case sumBasis < mainSize:
		var totalGrow float64
		for _, it := range items {
			totalGrow += it.Grow
		}
		if totalGrow > 0 {
			slack := mainSize - sumBasis
			for i, it := range items {
				if it.Grow > 0 {
					sizes[i] += slack * (it.Grow / totalGrow)
				}
			}
		}
	case sumBasis > mainSize:
		var totalWeight float64
		weights := make([]float64, n)
		for i, it := range items {
			weights[i] = it.Shrink * it.Basis
			totalWeight += weights[i]
		}
		if totalWeight > 0 {
			deficit := sumBasis - mainSize
			for i, it := range items {
				floor := it.MinContent
				if it.MinSize > floor {
					floor = it.MinSize
				}
				shrinkBy := deficit * (weights[i] / totalWeight)
				sizes[i] -= shrinkBy
				if sizes[i] < floor {
					sizes[i] = floor
				}
			}
		}
	}

	// Clamp min/max, then redistribute any resulting excess/deficit once.
	var slack float64
	unclamped := make([]bool, n)
	for i, it := range items {
		floor := it.MinContent
		if it.MinSize > floor {
			floor = it.MinSize
		}
		if sizes[i] < floor {
			slack -= floor - sizes[i]
			sizes[i] = floor
		} else if it.MaxSize > 0 && sizes[i] > it.MaxSize {
			slack += sizes[i] - it.MaxSize
			sizes[i] = it.MaxSize
		} else {
			unclamped[i] = true
		}
	}
	if slack != 0 {
		var unclampedTotal float64
		for i, ok := range unclamped {
			if ok {
				unclampedTotal += sizes[i]
			}
		}
		if unclampedTotal > 0 {
			for i, ok := range unclamped {
				if ok {
					sizes[i] += slack * (sizes[i] / unclampedTotal)
					if sizes[i] < 0 {
						sizes[i] = 0
					}
				}
			}
		}
	}
	return sizes
}

// WrapLines greedily packs items onto lines by main-axis basis size plus
// gap, per spec.md section 4.4's flex-wrap rule. Each returned slice holds
// the indices (into items) that landed on that line.
func WrapLines(items []FlexItem, mainSize, gap float64) [][]int {
	if len(items) == 0 {
		return nil
	}
	var lines [][]int
	var cur []int
	var curWidth float64
	for i, it := range items {
		w := it.Basis
		needsGap := len(cur) > 0
		add := w
		if needsGap {
			add += gap
		}
		if len(cur) > 0 && curWidth+add > mainSize {
			lines = append(lines, cur)
			cur = nil
			curWidth = 0
			needsGap = false
			add = w
		}
		cur = append(cur, i)
		curWidth += add
		_ = needsGap
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// ReverseLines reverses wrap-line order in place, for flex_wrap:wrap-reverse
// per spec.md section 9's open-question decision.
func ReverseLines(lines [][]int) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}
