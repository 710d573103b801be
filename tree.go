package artcorr

import "sort"

// determinerTag is the POS tag of determiner leaves.
const determinerTag = "DT"

// nounPhraseTag marks the constituents considered candidate correction sites.
const nounPhraseTag = "NP"

// articles are the determiner surface forms this pipeline corrects. The
// match against leaf text is case-sensitive.
var articles = map[string]bool{"a": true, "an": true, "the": true}

// NodeSpec is the interchange form of a parse-tree node: a nested record
// with a POS tag, optional surface text and sentence position (leaves), and
// optional children, as produced by the external constituency parser.
type NodeSpec struct {
	POS      string     `json:"pos"`
	Text     string     `json:"text,omitempty"`
	SIndex   int        `json:"s_index,omitempty"`
	Children []NodeSpec `json:"children,omitempty"`
}

// Node is the in-memory parse-tree node. Leaves carry the surface token and
// its 0-based position within the sentence (SIndex); interior nodes carry
// only the constituent tag and ordered children.
type Node struct {
	POS      string
	Text     string
	SIndex   int
	Children []*Node
}

// NewTree builds the in-memory tree for a sentence from its interchange
// record.
func NewTree(spec NodeSpec) *Node {
	n := &Node{
		POS:    spec.POS,
		Text:   spec.Text,
		SIndex: spec.SIndex,
	}
	for _, child := range spec.Children {
		n.Children = append(n.Children, NewTree(child))
	}
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the subtree's leaves in strict left-to-right sentence
// order. Collection is a pre-order walk, then a stable sort by SIndex, so
// scan order never depends on tree shape.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.collectLeaves(&leaves)
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].SIndex < leaves[j].SIndex
	})
	return leaves
}

func (n *Node) collectLeaves(leaves *[]*Node) {
	if n.IsLeaf() {
		*leaves = append(*leaves, n)
		return
	}
	for _, child := range n.Children {
		child.collectLeaves(leaves)
	}
}

// LeafCount returns the number of leaves in the subtree.
func (n *Node) LeafCount() int {
	if n.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.LeafCount()
	}
	return count
}

// isArticleLeaf reports whether the node is a determiner leaf bearing one
// of the article surface forms.
func (n *Node) isArticleLeaf() bool {
	return n.IsLeaf() && n.POS == determinerTag && articles[n.Text]
}

// articleLeafCount returns the number of article-bearing determiner leaves
// in the subtree.
func (n *Node) articleLeafCount() int {
	if n.IsLeaf() {
		if n.isArticleLeaf() {
			return 1
		}
		return 0
	}
	count := 0
	for _, child := range n.Children {
		count += child.articleLeafCount()
	}
	return count
}

// DPASubtrees returns the sentence's candidate determiner-phrase-with-
// article sites in left-to-right document order. A noun-phrase constituent
// whose leaf span holds exactly one article-bearing determiner is a site;
// its nested noun phrases share that article, so the walk stops there
// rather than report the same site twice. A constituent spanning several
// articles is descended so each article lands in its own innermost
// qualifying noun phrase. The pre-order walk makes discovery order
// canonical and stable across repeated calls.
func (n *Node) DPASubtrees() []*Node {
	var sites []*Node
	n.collectDPA(&sites)
	return sites
}

func (n *Node) collectDPA(sites *[]*Node) {
	count := n.articleLeafCount()
	if count == 0 {
		return
	}
	if n.POS == nounPhraseTag && count == 1 {
		*sites = append(*sites, n)
		return
	}
	for _, child := range n.Children {
		child.collectDPA(sites)
	}
}
