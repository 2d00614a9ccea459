// Package graph implements the minimal directed-graph surface needed for
// interaction and reproduction topologies: ordered vertex iteration, ordered
// out-neighbor lookup and self-loop addition.
package graph

import "sort"

type Graph struct {
	directed bool
	out      map[int][]int
}

// New builds a graph from an edge list. Undirected graphs store both
// orientations of every edge.
func New(edges [][2]int, directed bool) *Graph {
	g := &Graph{directed: directed, out: make(map[int][]int)}
	for _, edge := range edges {
		g.addEdge(edge[0], edge[1])
		if !directed && edge[0] != edge[1] {
			g.addEdge(edge[1], edge[0])
		}
	}
	for v := range g.out {
		sort.Ints(g.out[v])
	}
	return g
}

// Complete builds the complete undirected graph on n vertices, optionally
// with a self-loop on every vertex.
func Complete(n int, loops bool) *Graph {
	edges := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		if loops {
			edges = append(edges, [2]int{i, i})
		}
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return New(edges, false)
}

func (g *Graph) addEdge(from, to int) {
	for _, existing := range g.out[from] {
		if existing == to {
			return
		}
	}
	g.out[from] = append(g.out[from], to)
	if _, ok := g.out[to]; !ok {
		g.out[to] = nil
	}
}

func (g *Graph) Directed() bool {
	return g.directed
}

// Vertices returns all vertices in ascending order.
func (g *Graph) Vertices() []int {
	vertices := make([]int, 0, len(g.out))
	for v := range g.out {
		vertices = append(vertices, v)
	}
	sort.Ints(vertices)
	return vertices
}

// OutVertices returns v's out-neighbors in ascending order.
func (g *Graph) OutVertices(v int) []int {
	return append([]int(nil), g.out[v]...)
}

// Edges returns one orientation per stored adjacency. For undirected graphs
// each edge appears once with the smaller endpoint first.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, 0)
	for _, from := range g.Vertices() {
		for _, to := range g.out[from] {
			if !g.directed && to < from {
				continue
			}
			edges = append(edges, [2]int{from, to})
		}
	}
	return edges
}

// AddSelfLoops adds a self-loop at every vertex.
func (g *Graph) AddSelfLoops() {
	for _, v := range g.Vertices() {
		g.addEdge(v, v)
	}
	for v := range g.out {
		sort.Ints(g.out[v])
	}
}
