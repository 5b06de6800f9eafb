package ui

// VirtualItem is one materialized row of a virtualized list.
type VirtualItem struct {
	Index int
	Key   string
	Start int // offset of the row's first line within the full list
	Size  int
}

// Virtualizer computes which rows of a long list need rendering. Rows have a
// fixed height; only rows intersecting the scroll window (plus Overscan on
// each side) are materialized.
type Virtualizer struct {
	Count        int
	RowHeight    int
	MaxHeight    int // container cap; zero means uncapped
	Overscan     int
	MinRendered  int
	ScrollOffset int
	Key          func(index int) string
}

func (v Virtualizer) rowHeight() int {
	if v.RowHeight <= 0 {
		return 1
	}
	return v.RowHeight
}

// TotalSize is the height of the whole list.
func (v Virtualizer) TotalSize() int {
	if v.Count <= 0 {
		return 0
	}
	return v.Count * v.rowHeight()
}

// ContainerHeight is the visible height: the full list, capped at MaxHeight.
func (v Virtualizer) ContainerHeight() int {
	total := v.TotalSize()
	if v.MaxHeight > 0 && total > v.MaxHeight {
		return v.MaxHeight
	}
	return total
}

// Range returns the half-open row interval [start, end) to render.
func (v Virtualizer) Range() (int, int) {
	if v.Count <= 0 {
		return 0, 0
	}
	rh := v.rowHeight()
	scroll := v.clampedScroll()
	viewport := v.ContainerHeight()

	start := scroll / rh
	end := (scroll + viewport + rh - 1) / rh

	start -= v.Overscan
	end += v.Overscan
	if start < 0 {
		start = 0
	}
	if end > v.Count {
		end = v.Count
	}

	floor := v.MinRendered
	if floor > v.Count {
		floor = v.Count
	}
	if end-start < floor {
		end = start + floor
		if end > v.Count {
			end = v.Count
			start = end - floor
		}
	}
	return start, end
}

// Items materializes the rows in Range.
func (v Virtualizer) Items() []VirtualItem {
	start, end := v.Range()
	if end <= start {
		return nil
	}
	rh := v.rowHeight()
	items := make([]VirtualItem, 0, end-start)
	for i := start; i < end; i++ {
		item := VirtualItem{Index: i, Start: i * rh, Size: rh}
		if v.Key != nil {
			item.Key = v.Key(i)
		}
		items = append(items, item)
	}
	return items
}

// InView reports whether item lies inside the visible window.
func (v Virtualizer) InView(item VirtualItem) bool {
	scroll := v.clampedScroll()
	return item.Start >= scroll && item.Start+item.Size <= scroll+v.ContainerHeight()
}

// ScrollToIndex adjusts ScrollOffset by the minimum needed to show row i.
func (v *Virtualizer) ScrollToIndex(i int) {
	if v.Count <= 0 || i < 0 {
		v.ScrollOffset = 0
		return
	}
	if i >= v.Count {
		i = v.Count - 1
	}
	rh := v.rowHeight()
	top := i * rh
	bottom := top + rh
	viewport := v.ContainerHeight()

	if top < v.ScrollOffset {
		v.ScrollOffset = top
	}
	if bottom > v.ScrollOffset+viewport {
		v.ScrollOffset = bottom - viewport
	}
	v.ScrollOffset = v.clampedScroll()
}

// Reset scrolls back to the top for a list of count rows.
func (v *Virtualizer) Reset(count int) {
	v.Count = count
	v.ScrollOffset = 0
}

func (v Virtualizer) clampedScroll() int {
	maxScroll := v.TotalSize() - v.ContainerHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	switch {
	case v.ScrollOffset < 0:
		return 0
	case v.ScrollOffset > maxScroll:
		return maxScroll
	default:
		return v.ScrollOffset
	}
}
