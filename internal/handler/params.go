package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/middleware"
	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

// pathID parses a positive integer path parameter. It writes a 400 and returns false otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "invalid path parameter",
			map[string]string{name: name + " must be a positive integer"}))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into dst. It writes a 400 and returns false on malformed JSON.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// pageRequest reads pageNumber and pageSize. Unparseable values fall back to defaults.
func pageRequest(c *gin.Context) models.PageRequest {
	page, _ := strconv.Atoi(c.Query("pageNumber"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return models.PageRequest{PageNumber: page, PageSize: size}.Normalize()
}

func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "invalid query parameter",
			map[string]string{name: name + " must be a positive integer"}))
		return nil, false
	}
	return &v, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "invalid query parameter",
			map[string]string{name: name + " must be true or false"}))
		return nil, false
	}
	return &v, true
}

func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "invalid query parameter",
		map[string]string{name: name + " must be a date (YYYY-MM-DD) or RFC3339 timestamp"}))
	return nil, false
}

// queryEnum upper-cases a query value and checks it with valid.
func queryEnum[T ~string](c *gin.Context, name string, valid func(T) bool) (*T, bool) {
	raw := strings.ToUpper(strings.TrimSpace(c.Query(name)))
	if raw == "" {
		return nil, true
	}
	v := T(raw)
	if !valid(v) {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "invalid query parameter",
			map[string]string{name: name + " has an unsupported value"}))
		return nil, false
	}
	return &v, true
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// created answers 201 with a Location header pointing at the new resource.
func created(c *gin.Context, id interface{}, data interface{}) {
	base := strings.TrimRight(c.Request.URL.Path, "/")
	response.Created(c, base+"/"+toString(id), data)
}

func deleted(c *gin.Context, entity string) {
	response.Message(c, http.StatusOK, entity+" deleted")
}

func toString(id interface{}) string {
	switch v := id.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	}
	return ""
}

func currentUserID(c *gin.Context) *int64 {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
