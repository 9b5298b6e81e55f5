package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpupo63/blog-frontend/comments"
	"github.com/rpupo63/blog-frontend/models"
)

func (a *App) renderPosts(title string, page models.Page[models.Post], admin bool) {
	fmt.Fprintf(a.out, "%s (page %d of %d, %d total)\n", title, page.Number+1, max(page.TotalPages, 1), page.TotalElements)
	if len(page.Content) == 0 {
		fmt.Fprintln(a.out, "  no posts")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if admin {
		fmt.Fprintln(w, "ID\tTITLE\tSLUG\tSTATUS\tVIEWS\tUPDATED")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tSLUG\tTAGS\tVIEWS\tCREATED")
	}
	for _, p := range page.Content {
		if admin {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Title, p.Slug, p.Status, p.Views, p.UpdatedAt.Format("2006-01-02"))
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Title, p.Slug, strings.Join(p.Tags, ","), p.Views, p.CreatedAt.Format("2006-01-02"))
		}
	}
	w.Flush()
}

func (a *App) renderPost(p models.Post) {
	fmt.Fprintf(a.out, "# %s\n", p.Title)
	fmt.Fprintf(a.out, "id %d | /posts/%s | %s | %d views\n", p.ID, p.Slug, p.Status, p.Views)
	if len(p.Tags) > 0 {
		fmt.Fprintf(a.out, "tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Summary != "" {
		fmt.Fprintf(a.out, "\n%s\n", p.Summary)
	}
	fmt.Fprintf(a.out, "\n%s\n", p.Content)
}

func (a *App) renderTree(tree *comments.Tree) {
	fmt.Fprintf(a.out, "\nComments (%d)\n", tree.Len())
	tree.Walk(func(n *comments.Node, depth int) {
		indent := strings.Repeat("  ", depth+1)
		c := n.Comment
		fmt.Fprintf(a.out, "%s[%d] %s: %s\n", indent, c.ID, authorName(c), c.Content)
	})
}

func (a *App) renderComments(page models.Page[models.Comment]) {
	fmt.Fprintf(a.out, "Comments (page %d of %d, %d total)\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
	if len(page.Content) == 0 {
		fmt.Fprintln(a.out, "  no comments")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOST\tREPLY TO\tAUTHOR\tSTATUS\tCONTENT")
	for _, c := range page.Content {
		parent := "-"
		if c.ParentID != nil {
			parent = fmt.Sprint(*c.ParentID)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n", c.ID, c.PostID, parent, authorName(c), c.Status, c.Content)
	}
	w.Flush()
}

func authorName(c models.Comment) string {
	if c.AuthorName == "" {
		return "anonymous"
	}
	return c.AuthorName
}
