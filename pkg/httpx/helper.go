package httpx

import (
	"net/http"
	"strconv"

	apperrors "garageportal/pkg/errors"
)

// ExtractPageQuery reads the offset/limit pagination parameters the booking
// backend expects: offset is a 1-based page number, limit a page size.
func ExtractPageQuery(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	offset := 1
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit := 10
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	if offset < 1 {
		offset = 1
	}
	if limit < 1 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	return offset, limit, nil
}
