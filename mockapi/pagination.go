package mockapi

import (
	"net/http"
	"strconv"

	"github.com/rpupo63/blog-frontend/errs"
)

const maxPageSize = 100

// pageRequest reads the zero-based page and the page size from the query
func pageRequest(r *http.Request, defaultSize int) (page, size int, err error) {
	page, size = 0, defaultSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 0 {
			return 0, 0, errs.NewInvalidFieldError("page", "must be a non-negative integer")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			return 0, 0, errs.NewInvalidFieldError("size", "must be between 1 and 100")
		}
	}
	return page, size, nil
}

func idParam(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a positive integer")
	}
	return id, nil
}
