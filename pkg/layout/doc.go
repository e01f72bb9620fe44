// Package layout computes the left-to-right tree layout of a mind map.
//
// # Algorithm
//
// Every subtree reserves a vertical slice equal to its subtree height. A leaf
// or collapsed node reserves its own height plus [Config.YGap]; any other node
// reserves the sum of its children's slices. [Tree] walks depth-first from the
// root, keeps the root where it is, stacks each node's children in slices
// centered on the node's y and places them [Config.XGap] further right.
//
// Locked nodes are skipped together with their subtree, so locking pins a
// branch against automatic re-layout. Collapsed nodes are placed but their
// hidden descendants are left alone.
//
// # Measurement
//
// Heights come from the node's last measured size, falling back to
// [Config.DefaultHeight]. A [Measurer] supplies sizes; [TextMeasurer]
// estimates them from text lengths so headless callers (CLI, HTTP API) get
// realistic spacing without a browser.
//
// # Safety
//
// Recursion is guarded by a visited set and [Config.MaxDepth]. Corrupted
// documents therefore produce a CYCLE_DETECTED error instead of a stack
// overflow.
package layout
