package constraint

import (
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

// NodeHandle identifies a structural node.
type NodeHandle int

// InvalidNode is returned when structural node creation is rejected.
const InvalidNode NodeHandle = -1

// maxNodeConnections bounds how many constraints one structural node tracks.
const maxNodeConnections = 8

// StructuralNode marks a body as load-bearing. Loads are recomputed every
// Analyze from the constraints attached to the node's body; redistributed
// load from a collapse arrives one tick late through the pending buffer.
type StructuralNode struct {
	Body     world.Handle
	Position core.Vec3

	Capacity    float64
	CurrentLoad float64
	Critical    bool

	// pendingLoad holds load redistributed by a cascade during the previous
	// Analyze. It is folded into CurrentLoad after the next recompute, so a
	// collapse propagates with a one-tick delay.
	pendingLoad float64

	connections     [maxNodeConnections]Handle
	connectionCount int
}

// AddStructuralNode registers a body as a load-bearing structural element and
// wires in every existing constraint touching it. Returns InvalidNode when
// the table is full or the body is unknown; the world anchor sentinel is not
// a structural element.
func (s *System) AddStructuralNode(body world.Handle, capacity float64, critical bool) NodeHandle {
	if len(s.nodes) >= MaxStructuralNodes {
		return InvalidNode
	}
	b := s.w.Body(body)
	if b == nil {
		return InvalidNode
	}

	n := StructuralNode{
		Body:     body,
		Position: b.Position,
		Capacity: capacity,
		Critical: critical,
	}
	for i := range s.constraints {
		if n.connectionCount >= maxNodeConnections {
			break
		}
		c := &s.constraints[i]
		if c.BodyA == body || c.BodyB == body {
			n.connections[n.connectionCount] = Handle(i)
			n.connectionCount++
		}
	}

	s.nodes = append(s.nodes, n)
	return NodeHandle(len(s.nodes) - 1)
}

// attachToNodes wires a freshly created constraint into every structural node
// sharing one of its endpoints.
func (s *System) attachToNodes(h Handle) {
	c := &s.constraints[h]
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.connectionCount >= maxNodeConnections {
			continue
		}
		if n.Body == c.BodyA || n.Body == c.BodyB {
			n.connections[n.connectionCount] = h
			n.connectionCount++
		}
	}
}

// nodeValid reports whether nh addresses a registered structural node.
func (s *System) nodeValid(nh NodeHandle) bool {
	return nh >= 0 && int(nh) < len(s.nodes)
}

// Analyze recomputes structural loads and integrity for the current tick.
// Order matters: loads are rebuilt from scratch, pending redistributed load
// from last tick's collapses is folded in, and only then are nodes checked
// for overload. A critical node past 1.5x capacity collapses, breaking its
// constraints and queueing its load for the neighbors' next tick.
func (s *System) Analyze() {
	s.integrity = 1.0
	s.cascadeCount = 0

	for i := range s.nodes {
		s.nodes[i].CurrentLoad = 0
	}

	for i := range s.constraints {
		c := &s.constraints[i]
		if c.Broken {
			continue
		}
		ea, eb, ok := s.resolve(c)
		if !ok {
			continue
		}
		force := eb.pos.Sub(ea.pos).Len() * c.SpringK
		for j := range s.nodes {
			n := &s.nodes[j]
			if n.Body == c.BodyA || n.Body == c.BodyB {
				n.CurrentLoad += force
			}
		}
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		n.CurrentLoad += n.pendingLoad
		n.pendingLoad = 0
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.CurrentLoad <= n.Capacity {
			continue
		}
		ratio := n.CurrentLoad / n.Capacity
		s.integrity -= (ratio - 1.0) * 0.1
		if n.Critical && ratio > 1.5 {
			s.collapse(i)
		}
	}

	if s.integrity < 0 {
		s.integrity = 0
	}
}

// collapse fails a structural node: every attached constraint breaks, and the
// node's load is split across the nodes at the far ends of those constraints.
// The redistributed shares land in the pending buffers, so they do not
// trigger further collapses within this Analyze.
func (s *System) collapse(idx int) {
	n := &s.nodes[idx]
	s.cascadeCount++

	for i := 0; i < n.connectionCount; i++ {
		s.Break(n.connections[i])
	}

	if n.connectionCount > 0 {
		share := n.CurrentLoad / float64(n.connectionCount)
		for i := 0; i < n.connectionCount; i++ {
			c := s.Constraint(n.connections[i])
			if c == nil {
				continue
			}
			other := c.BodyA
			if other == n.Body {
				other = c.BodyB
			}
			for j := range s.nodes {
				if j != idx && s.nodes[j].Body == other {
					s.nodes[j].pendingLoad += share
					break
				}
			}
		}
	}

	n.CurrentLoad = 0
}

// ApplyStress weakens every unbroken constraint whose midpoint lies within
// radius of center, with linear falloff. A constraint whose break threshold
// drops below zero snaps immediately and counts as a cascade failure.
func (s *System) ApplyStress(center core.Vec3, radius, stress float64) {
	if radius <= 0 {
		return
	}
	for i := range s.constraints {
		c := &s.constraints[i]
		if c.Broken {
			continue
		}
		pa, okA := s.endpointPosition(c.BodyA, c.AnchorA)
		pb, okB := s.endpointPosition(c.BodyB, c.AnchorB)
		if !okA || !okB {
			continue
		}
		mid := pa.Add(pb).Scale(0.5)
		dist := mid.Sub(center).Len()
		if dist >= radius {
			continue
		}
		falloff := 1.0 - dist/radius
		c.BreakThreshold -= stress * falloff
		if c.BreakThreshold < 0 {
			c.Broken = true
			s.cascadeCount++
		}
	}
}

// endpointPosition returns the reference position of an endpoint for stress
// midpoints: the body position, or the anchor vector for world anchors.
func (s *System) endpointPosition(h world.Handle, anchor core.Vec3) (core.Vec3, bool) {
	if h == world.Anchor {
		return anchor, true
	}
	b := s.w.Body(h)
	if b == nil {
		return core.Vec3{}, false
	}
	return b.Position, true
}

// maxLoadPathLen bounds how far a load path trace walks.
const maxLoadPathLen = 16

// LoadPath is the result of tracing load through connected structural nodes.
type LoadPath struct {
	Nodes           []NodeHandle
	TotalLoad       float64
	WeakestCapacity float64
	Weakest         NodeHandle
}

// TraceLoadPath walks from a structural node through unbroken constraints,
// always taking the first unvisited connection, and reports the accumulated
// load and the weakest node along the way. The walk is bounded and fully
// determined by registration order.
func (s *System) TraceLoadPath(start NodeHandle) LoadPath {
	path := LoadPath{WeakestCapacity: 1000.0, Weakest: InvalidNode}
	if !s.nodeValid(start) {
		return path
	}

	visited := make(map[NodeHandle]bool, maxLoadPathLen)
	current := start
	for len(path.Nodes) < maxLoadPathLen {
		n := &s.nodes[current]
		path.Nodes = append(path.Nodes, current)
		path.TotalLoad += n.CurrentLoad
		if n.Capacity < path.WeakestCapacity || path.Weakest == InvalidNode {
			path.WeakestCapacity = n.Capacity
			path.Weakest = current
		}
		visited[current] = true

		next := InvalidNode
		for i := 0; i < n.connectionCount && next == InvalidNode; i++ {
			c := s.Constraint(n.connections[i])
			if c == nil || c.Broken {
				continue
			}
			other := c.BodyA
			if other == n.Body {
				other = c.BodyB
			}
			for j := range s.nodes {
				nh := NodeHandle(j)
				if !visited[nh] && s.nodes[j].Body == other {
					next = nh
					break
				}
			}
		}
		if next == InvalidNode {
			break
		}
		current = next
	}
	return path
}

// Integrity returns the system integrity computed by the last Analyze, in
// [0, 1].
func (s *System) Integrity() float64 { return s.integrity }

// CascadeCount returns how many failures cascaded since the last Analyze
// began, including stress-induced snaps applied afterwards.
func (s *System) CascadeCount() int { return s.cascadeCount }

// NodeCount returns the number of structural nodes.
func (s *System) NodeCount() int { return len(s.nodes) }

// NodeLoad returns the current load on a structural node, or 0 for unknown
// handles.
func (s *System) NodeLoad(nh NodeHandle) float64 {
	if !s.nodeValid(nh) {
		return 0
	}
	return s.nodes[nh].CurrentLoad
}

// Node returns the structural node record, or nil for unknown handles.
func (s *System) Node(nh NodeHandle) *StructuralNode {
	if !s.nodeValid(nh) {
		return nil
	}
	return &s.nodes[nh]
}
