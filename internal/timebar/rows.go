package timebar

import "sort"

// AssignRowIndices partitions intervals into the minimum number of
// non-overlapping visual rows and returns, per row, the indices of the input
// intervals placed there in chronological order. Placement is greedy
// first-fit over intervals sorted by start time; ties in start time keep
// their original input order, so the result is deterministic for any input.
func AssignRowIndices(intervals []Interval) ([][]int, error) {
	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return nil, err
		}
	}

	order := make([]int, len(intervals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return intervals[order[a]].Start.Before(intervals[order[b]].Start)
	})

	var rows [][]int
	var rowEnds []int // index of the last interval placed in each row

	for _, idx := range order {
		iv := intervals[idx]
		placed := false
		for r := range rows {
			last := intervals[rowEnds[r]]
			if !last.End.After(iv.Start) {
				rows[r] = append(rows[r], idx)
				rowEnds[r] = idx
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []int{idx})
			rowEnds = append(rowEnds, idx)
		}
	}

	return rows, nil
}

// AssignRows is the interval-valued form of AssignRowIndices.
func AssignRows(intervals []Interval) ([][]Interval, error) {
	indexRows, err := AssignRowIndices(intervals)
	if err != nil {
		return nil, err
	}

	rows := make([][]Interval, len(indexRows))
	for r, indices := range indexRows {
		rows[r] = make([]Interval, len(indices))
		for i, idx := range indices {
			rows[r][i] = intervals[idx]
		}
	}
	return rows, nil
}
