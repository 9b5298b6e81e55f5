package app

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
)

// parsePostForm overlays a JSON file and then individual flags on base.
// changed reports whether anything was given at all.
func (a *App) parsePostForm(name string, args []string, base models.PostRequest) (models.PostRequest, bool, error) {
	fs := a.flagSet(name)
	file := fs.String("file", "", "JSON file holding the post")
	title := fs.String("title", "", "title")
	slug := fs.String("slug", "", "slug")
	content := fs.String("content", "", "markdown content")
	summary := fs.String("summary", "", "summary")
	cover := fs.String("cover", "", "cover image URL")
	status := fs.String("status", "", "DRAFT or PUBLISHED")
	tags := fs.String("tags", "", "comma separated tag names")
	if err := fs.Parse(args); err != nil {
		return models.PostRequest{}, false, err
	}

	req := base
	changed := false
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			return models.PostRequest{}, false, fmt.Errorf("read post file: %w", err)
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return models.PostRequest{}, false, errs.NewMalformedPayloadError("post file", err)
		}
		changed = true
	}

	fs.Visit(func(f *flag.Flag) {
		changed = true
		switch f.Name {
		case "title":
			req.Title = *title
		case "slug":
			req.Slug = *slug
		case "content":
			req.Content = *content
		case "summary":
			req.Summary = summary
		case "cover":
			req.CoverImage = cover
		case "status":
			req.Status = models.PostStatus(strings.ToUpper(*status))
		case "tags":
			req.TagNames = splitTags(*tags)
		}
	})

	switch {
	case strings.TrimSpace(req.Title) == "":
		return models.PostRequest{}, false, errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(req.Slug) == "":
		return models.PostRequest{}, false, errs.NewMissingRequiredFieldError("slug")
	case strings.TrimSpace(req.Content) == "":
		return models.PostRequest{}, false, errs.NewMissingRequiredFieldError("content")
	}
	if req.Status != "" && req.Status != models.PostDraft && req.Status != models.PostPublished {
		return models.PostRequest{}, false, errs.NewInvalidFieldError("status", "must be DRAFT or PUBLISHED")
	}
	return req, changed, nil
}

func splitTags(raw string) []string {
	names := []string{}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// requestFromPost turns a stored post back into an update body
func requestFromPost(p models.Post) models.PostRequest {
	summary := p.Summary
	return models.PostRequest{
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		Summary:    &summary,
		CoverImage: p.CoverImage,
		Status:     p.Status,
		TagNames:   slices.Clone(p.Tags),
	}
}
