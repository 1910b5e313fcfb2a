package accel

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// KDStats summarizes the shape of a built tree
type KDStats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	AvgDepth   float64 // mean leaf depth
	Primitives int
	Straddling int // primitives held by interior nodes
	LargestSet int // most primitives held by a single node
}

// Stats collects statistics about the tree structure
func (t *KDTree) Stats() KDStats {
	stats := KDStats{}
	t.Walk(func(n NodeInfo) {
		stats.Nodes++
		stats.Primitives += len(n.Primitives)
		if n.Depth > stats.MaxDepth {
			stats.MaxDepth = n.Depth
		}
		if len(n.Primitives) > stats.LargestSet {
			stats.LargestSet = len(n.Primitives)
		}

		if n.Leaf {
			stats.Leaves++
			stats.AvgDepth += float64(n.Depth)
		} else {
			stats.Straddling += len(n.Primitives)
		}
	})

	if stats.Leaves > 0 {
		stats.AvgDepth /= float64(stats.Leaves)
	}
	return stats
}

// Table renders the statistics as a text table
func (s KDStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"KD-tree", "Value"})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Avg leaf depth", fmt.Sprintf("%.2f", s.AvgDepth)})
	table.Append([]string{"Straddling", fmt.Sprintf("%d", s.Straddling)})
	table.Append([]string{"Largest node", fmt.Sprintf("%d", s.LargestSet)})
	table.SetFooter([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})

	table.Render()
	return buf.String()
}

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	AvgDepth   float64 // mean leaf depth
	Primitives int
}

// Table renders the statistics as a text table
func (s BVHStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", "Value"})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Avg leaf depth", fmt.Sprintf("%.2f", s.AvgDepth)})
	table.SetFooter([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})

	table.Render()
	return buf.String()
}
