//Package bond holds the undirected bond graph over atom indexes and the
//breadth-first neighbor traversal the anchor geometry is built on. The
//graph is never mutated during geometry computation.
package bond

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

//Numberer gives the graph access to the atomic numbers of the container it
//was built over, so hydrogens can be told apart during traversal.
type Numberer interface {
	Len() int
	AtomicNumber(i int) int
}

//Atoms with an atomic number below this are treated as hydrogens: pushed to
//the end of each traversal level, or excluded from the walk entirely.
const heavyThreshold = 2

//Graph is an undirected bond graph over the atom indexes of one container.
type Graph struct {
	g    *simple.UndirectedGraph
	nums Numberer
}

//NewGraph builds a Graph from a list of bonds given as index pairs. All
//atoms of the container become nodes, bonded or not. It fails with a
//NoSuchAtom error if a pair points outside the container.
func NewGraph(bonds [][2]int, nums Numberer) (*Graph, error) {
	g := simple.NewUndirectedGraph()
	n := nums.Len()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range bonds {
		if b[0] < 0 || b[0] >= n || b[1] < 0 || b[1] >= n {
			return nil, &Error{message: fmt.Sprintf("hydrate/bond: bond %v outside the container (%d atoms)", b, n), noSuchAtom: true}
		}
		if b[0] == b[1] {
			return nil, &Error{message: fmt.Sprintf("hydrate/bond: atom %d bonded to itself", b[0])}
		}
		g.SetEdge(g.NewEdge(simple.Node(b[0]), simple.Node(b[1])))
	}
	return &Graph{g: g, nums: nums}, nil
}

//from returns the indexes adjacent to i, in ascending order. The gonum
//iterator order is not deterministic, and downstream geometry picks
//neighbors positionally, so we fix the order here.
func (G *Graph) from(i int) []int {
	it := G.g.From(int64(i))
	ret := make([]int, 0, it.Len())
	for it.Next() {
		ret = append(ret, int(it.Node().ID()))
	}
	sort.Ints(ret)
	return ret
}

//Neighbors walks the graph breadth-first from start, up to depth bonds
//away, and returns the atom indexes grouped by bond distance: element 0
//holds start itself, element d the atoms first reached at distance d. Each
//atom appears at most once, at the first depth at which it is reached, and
//the walk never expands beyond the requested depth. Within each group all
//non-hydrogen atoms come first (discovery order preserved), then the
//hydrogens: downstream code selects "the first neighbor" positionally and
//a hydrogen must not shadow a heavy reference atom. If hydrogens is false,
//hydrogens are excluded from the walk entirely, not merely reordered.
func (G *Graph) Neighbors(start, depth int, hydrogens bool) ([][]int, error) {
	n := G.nums.Len()
	if start < 0 || start >= n {
		return nil, &Error{message: fmt.Sprintf("hydrate/bond: atom %d out of range (%d atoms)", start, n), noSuchAtom: true}
	}
	levels := [][]int{{start}}
	visited := make([]bool, n)
	visited[start] = true
	type item struct{ index, depth int }
	queue := []item{{start, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= depth {
			continue
		}
		for _, next := range G.from(cur.index) {
			if visited[next] {
				continue
			}
			if !hydrogens && G.nums.AtomicNumber(next) < heavyThreshold {
				continue
			}
			visited[next] = true
			for len(levels) <= cur.depth+1 {
				levels = append(levels, []int{})
			}
			levels[cur.depth+1] = append(levels[cur.depth+1], next)
			queue = append(queue, item{next, cur.depth + 1})
		}
	}
	for d, level := range levels {
		levels[d] = pushHydrogensToEnd(level, G.nums)
	}
	return levels, nil
}

//pushHydrogensToEnd reorders one level so heavy atoms come first, keeping
//the relative (discovery) order inside each class.
func pushHydrogensToEnd(level []int, nums Numberer) []int {
	ret := make([]int, 0, len(level))
	for _, i := range level {
		if nums.AtomicNumber(i) >= heavyThreshold {
			ret = append(ret, i)
		}
	}
	for _, i := range level {
		if nums.AtomicNumber(i) < heavyThreshold {
			ret = append(ret, i)
		}
	}
	return ret
}

//Degree returns the number of atoms bonded to i.
func (G *Graph) Degree(i int) int {
	return len(G.from(i))
}

//Nodes exposes the underlying gonum node iterator, for callers that want to
//run their own graph algorithms over the bonds.
func (G *Graph) Nodes() graph.Nodes {
	return G.g.Nodes()
}

//Error is the bond package error type. It implements the goHydrate Error
//interface.
type Error struct {
	message    string
	deco       []string
	noSuchAtom bool
}

func (err *Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IsNoSuchAtom returns whether the error comes from an out-of-range atom index.
func (err *Error) IsNoSuchAtom() bool { return err.noSuchAtom }
