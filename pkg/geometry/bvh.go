package geometry

import (
	"fmt"
	"sort"

	"pathtracer/pkg/core"
)

// BVHNode is a node in the bounding volume hierarchy: two children plus the
// cached box that tightly bounds both. A single-primitive leaf stores the
// primitive as both children. The tree is built once per scene and is
// read-only during rendering, so any number of workers may traverse it
// concurrently.
type BVHNode struct {
	left, right core.Hitable
	box         core.AABB
}

// NewBVH builds a BVH over the given primitives for the [time0, time1] motion
// window. The input slice is left untouched; construction sorts an internal
// copy. Fails on an empty list or on any primitive without a bounding box,
// so a malformed scene cannot silently degrade to an always-miss node.
func NewBVH(objects []core.Hitable, time0, time1 float64) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("bvh: cannot build from an empty primitive list")
	}

	sorted := make([]core.Hitable, len(objects))
	copy(sorted, objects)

	return buildBVH(sorted, time0, time1)
}

func buildBVH(objects []core.Hitable, time0, time1 float64) (*BVHNode, error) {
	// Union box over the slice; the split axis is its longest extent. The
	// longest-axis choice is deterministic, which keeps renders reproducible
	// where a random axis would not be.
	var union core.AABB
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("bvh: primitive %T has no bounding box over [%g, %g]", object, time0, time1)
		}
		if i == 0 {
			union = box
		} else {
			union = union.SurroundingBox(box)
		}
	}

	axis := union.LongestAxis()
	sort.SliceStable(objects, func(i, j int) bool {
		boxI, _ := objects[i].BoundingBox(time0, time1)
		boxJ, _ := objects[j].BoundingBox(time0, time1)
		return boxI.Min.Axis(axis) < boxJ.Min.Axis(axis)
	})

	var left, right core.Hitable
	switch len(objects) {
	case 1:
		left, right = objects[0], objects[0]
	case 2:
		left, right = objects[0], objects[1]
	default:
		mid := len(objects) / 2

		var err error
		if left, err = buildBVH(objects[:mid], time0, time1); err != nil {
			return nil, err
		}
		if right, err = buildBVH(objects[mid:], time0, time1); err != nil {
			return nil, err
		}
	}

	leftBox, _ := left.BoundingBox(time0, time1)
	rightBox, _ := right.BoundingBox(time0, time1)

	return &BVHNode{
		left:  left,
		right: right,
		box:   leftBox.SurroundingBox(rightBox),
	}, nil
}

// Hit prunes on the cached node box, then tests both children and returns the
// closer hit. Visiting both children unconditionally is correct regardless of
// traversal order since the results are compared by ray parameter.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, leftOK := n.left.Hit(ray, tMin, tMax)
	rightHit, rightOK := n.right.Hit(ray, tMin, tMax)

	switch {
	case leftOK && rightOK:
		if leftHit.T < rightHit.T {
			return leftHit, true
		}
		return rightHit, true
	case leftOK:
		return leftHit, true
	case rightOK:
		return rightHit, true
	default:
		return nil, false
	}
}

// BoundingBox returns the cached node box, computed once at construction
func (n *BVHNode) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return n.box, true
}

// BVHStats summarizes the shape of a built tree
type BVHStats struct {
	Nodes      int
	Leaves     int
	Primitives int
	MaxDepth   int
}

// Stats walks the tree and reports its node and leaf counts
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	leftNode, leftIsNode := n.left.(*BVHNode)
	rightNode, rightIsNode := n.right.(*BVHNode)

	if !leftIsNode && !rightIsNode {
		stats.Leaves++
		if n.left == n.right {
			stats.Primitives++
		} else {
			stats.Primitives += 2
		}
		return
	}

	if leftIsNode {
		leftNode.collectStats(depth+1, stats)
	} else {
		stats.Primitives++
	}
	if rightIsNode {
		rightNode.collectStats(depth+1, stats)
	} else {
		stats.Primitives++
	}
}
