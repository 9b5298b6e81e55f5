// Package comments turns the flat comment list of a post into a reply tree
// and checks new replies against it.
package comments

import (
	"fmt"

	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
)

// Node is one comment with its direct replies in list order
type Node struct {
	Comment models.Comment
	Replies []*Node
}

// Tree indexes the comments of a single post by id
type Tree struct {
	PostID int64
	Roots  []*Node
	byID   map[int64]*Node
}

// BuildTree links comments to their parents. A comment whose parent is absent
// from the list (for instance still pending moderation) becomes a root.
// Comments of another post, duplicate ids and parent cycles are errors.
func BuildTree(postID int64, list []models.Comment) (*Tree, error) {
	tree := &Tree{
		PostID: postID,
		byID:   make(map[int64]*Node, len(list)),
	}

	for _, c := range list {
		if c.PostID != postID {
			return nil, fmt.Errorf("comment %d: %w", c.ID, errs.ErrCrossPostReply)
		}
		if _, dup := tree.byID[c.ID]; dup {
			return nil, fmt.Errorf("comment %d listed twice", c.ID)
		}
		tree.byID[c.ID] = &Node{Comment: c}
	}

	for _, c := range list {
		if err := tree.checkChain(c.ID); err != nil {
			return nil, err
		}
	}

	for _, c := range list {
		node := tree.byID[c.ID]
		if c.ParentID != nil {
			if parent, ok := tree.byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		tree.Roots = append(tree.Roots, node)
	}
	return tree, nil
}

// checkChain walks parent links from id and fails if a node repeats
func (t *Tree) checkChain(id int64) error {
	seen := map[int64]bool{}
	for current, ok := t.byID[id]; ok; {
		cid := current.Comment.ID
		if seen[cid] {
			return fmt.Errorf("comment %d: %w", id, errs.ErrCommentCycle)
		}
		seen[cid] = true
		if current.Comment.ParentID == nil {
			return nil
		}
		current, ok = t.byID[*current.Comment.ParentID]
	}
	return nil
}

// Find returns the node with the given id
func (t *Tree) Find(id int64) (*Node, bool) {
	node, ok := t.byID[id]
	return node, ok
}

// Len is the number of comments in the tree
func (t *Tree) Len() int {
	return len(t.byID)
}

// ValidateReply checks that a new comment on postID may reply to parentID.
// A nil parentID is a top-level comment and always valid.
func (t *Tree) ValidateReply(postID int64, parentID *int64) error {
	if postID != t.PostID {
		return fmt.Errorf("post %d: %w", postID, errs.ErrCrossPostReply)
	}
	if parentID == nil {
		return nil
	}
	parent, ok := t.byID[*parentID]
	if !ok {
		return fmt.Errorf("comment %d: %w", *parentID, errs.ErrParentNotFound)
	}
	if parent.Comment.PostID != postID {
		return fmt.Errorf("comment %d: %w", *parentID, errs.ErrCrossPostReply)
	}
	return t.checkChain(*parentID)
}

// Walk visits every node depth first, passing its nesting depth
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			visit(n.Replies, depth+1)
		}
	}
	visit(t.Roots, 0)
}
