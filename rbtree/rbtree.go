package rbtree

// Entry is a single key-value pair held by the tree.
type Entry struct {
	Key   string
	Value string
}

type nodeColor uint8

const (
	colorBlack nodeColor = iota
	colorRed
)

type node struct {
	key   string
	value string

	left   *node
	right  *node
	parent *node

	color nodeColor
}

// Tree is a red-black tree mapping string keys to string values,
// giving ordered traversal and O(log n) point operations.
// The zero value is not usable, use New.
type Tree struct {
	// sentinel is the shared leaf node, always black,
	// never mutated after construction
	sentinel *node
	root     *node
	size     int
}

// New ...
func New() *Tree {
	s := &node{color: colorBlack}
	return &Tree{
		sentinel: s,
		root:     s,
	}
}

// Len returns the number of keys in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Set inserts the key-value pair, overwriting the value in place
// without structural change if the key already exists.
func (t *Tree) Set(key string, value string) {
	parent := t.sentinel
	current := t.root

	for current != t.sentinel {
		parent = current
		if key < current.key {
			current = current.left
		} else if key > current.key {
			current = current.right
		} else {
			current.value = value
			return
		}
	}

	n := &node{
		key:    key,
		value:  value,
		left:   t.sentinel,
		right:  t.sentinel,
		parent: parent,
		color:  colorRed,
	}
	t.size++

	if parent == t.sentinel {
		t.root = n
		n.color = colorBlack
		return
	}
	if key < parent.key {
		parent.left = n
	} else {
		parent.right = n
	}

	if parent.parent == t.sentinel {
		return
	}
	t.fixInsert(n)
}

func (t *Tree) fixInsert(n *node) {
	for n != t.root && n.parent.color == colorRed {
		if n.parent == n.parent.parent.right {
			uncle := n.parent.parent.left
			if uncle.color == colorRed {
				uncle.color = colorBlack
				n.parent.color = colorBlack
				n.parent.parent.color = colorRed
				n = n.parent.parent
			} else {
				if n == n.parent.left {
					n = n.parent
					t.rotateRight(n)
				}
				n.parent.color = colorBlack
				n.parent.parent.color = colorRed
				t.rotateLeft(n.parent.parent)
			}
		} else {
			uncle := n.parent.parent.right
			if uncle.color == colorRed {
				uncle.color = colorBlack
				n.parent.color = colorBlack
				n.parent.parent.color = colorRed
				n = n.parent.parent
			} else {
				if n == n.parent.right {
					n = n.parent
					t.rotateLeft(n)
				}
				n.parent.color = colorBlack
				n.parent.parent.color = colorRed
				t.rotateRight(n.parent.parent)
			}
		}
	}
	t.root.color = colorBlack
}

func (t *Tree) rotateLeft(x *node) {
	y := x.right
	x.right = y.left

	if y.left != t.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent

	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}

	y.left = x
	x.parent = y
}

func (t *Tree) rotateRight(x *node) {
	y := x.left
	x.left = y.right

	if y.right != t.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent

	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}

	y.right = x
	x.parent = y
}

// Get returns the value stored under key, with ok = false on a miss.
func (t *Tree) Get(key string) (string, bool) {
	current := t.root
	for current != t.sentinel {
		if key == current.key {
			return current.value, true
		}
		if key < current.key {
			current = current.left
		} else {
			current = current.right
		}
	}
	return "", false
}

// InOrder returns all entries in ascending key order.
// Intended for export and diagnostics, not for the lookup hot path.
func (t *Tree) InOrder() []Entry {
	result := make([]Entry, 0, t.size)
	t.appendInOrder(t.root, &result)
	return result
}

func (t *Tree) appendInOrder(n *node, result *[]Entry) {
	if n == t.sentinel {
		return
	}
	t.appendInOrder(n.left, result)
	*result = append(*result, Entry{Key: n.key, Value: n.value})
	t.appendInOrder(n.right, result)
}
