// Package thread orders the comments of a blog post into reply threads.
package thread

import (
	"iter"
	"sort"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
)

// Entry is one comment of a walk with its nesting depth (0 for roots).
type Entry struct {
	Comment *model.Comment
	Depth   int
}

// Node is a comment with its nested replies.
type Node struct {
	model.Comment
	Answers []*Node `json:"answers"`
}

type forest struct {
	byID     map[uint]*model.Comment
	children map[uint][]*model.Comment
	roots    []*model.Comment
	order    []*model.Comment
}

func index(comments []model.Comment) *forest {
	f := &forest{
		byID:     make(map[uint]*model.Comment, len(comments)),
		children: make(map[uint][]*model.Comment),
	}
	for i := range comments {
		c := &comments[i]
		if _, dup := f.byID[c.ID]; dup {
			continue
		}
		f.byID[c.ID] = c
		f.order = append(f.order, c)
	}
	sort.Slice(f.order, func(i, j int) bool { return f.order[i].ID < f.order[j].ID })

	for _, c := range f.order {
		// a reply whose parent is not among the comments is shown at top level
		if c.ParentID == nil || f.byID[*c.ParentID] == nil || *c.ParentID == c.ID {
			f.roots = append(f.roots, c)
			continue
		}
		f.children[*c.ParentID] = append(f.children[*c.ParentID], c)
	}
	return f
}

// Walk yields comments depth-first, parents before their replies and
// siblings in id order. Every comment is yielded exactly once: comments
// that are only reachable through a parent cycle are yielded afterwards
// as additional roots. The walk is lazy and stops when yield returns false.
func Walk(comments []model.Comment) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		f := index(comments)
		visited := make(map[uint]bool, len(f.order))

		var visit func(c *model.Comment, depth int) bool
		visit = func(c *model.Comment, depth int) bool {
			if visited[c.ID] {
				return true
			}
			visited[c.ID] = true
			if !yield(Entry{Comment: c, Depth: depth}) {
				return false
			}
			for _, child := range f.children[c.ID] {
				if !visit(child, depth+1) {
					return false
				}
			}
			return true
		}

		for _, root := range f.roots {
			if !visit(root, 0) {
				return
			}
		}
		for _, c := range f.order {
			if !visited[c.ID] && !visit(c, 0) {
				return
			}
		}
	}
}

// Build nests the walk into a tree of replies.
func Build(comments []model.Comment) []*Node {
	var roots []*Node
	var stack []*Node
	for entry := range Walk(comments) {
		node := &Node{Comment: *entry.Comment, Answers: []*Node{}}
		stack = stack[:min(entry.Depth, len(stack))]
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Answers = append(parent.Answers, node)
		}
		stack = append(stack, node)
	}
	if roots == nil {
		roots = []*Node{}
	}
	return roots
}
