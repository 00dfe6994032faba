package api

import (
	"net/http"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/category"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GetTree serves the category forest. `q` filters by name/description,
// `includeInactive=true` is meant for the admin console.
func (h *CategoryHandler) GetTree(c echo.Context) error {
	var query *string
	if q := c.QueryParam("q"); q != "" {
		query = &q
	}
	includeInactive := c.QueryParam("includeInactive") == "true"

	tree, err := h.categories.GetTree(c.Request().Context(), query, includeInactive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

// GetParentOptions serves the indented parent-picker list.
func (h *CategoryHandler) GetParentOptions(c echo.Context) error {
	var excludeID *string
	if id := c.QueryParam("exclude"); id != "" {
		excludeID = &id
	}

	options, err := h.categories.GetParentOptions(c.Request().Context(), excludeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, options)
}

type createCategoryRequest struct {
	NameEn           string  `json:"nameEn"`
	NameAr           *string `json:"nameAr"`
	Description      *string `json:"description"`
	ParentCategoryID *string `json:"parentCategoryId"`
	SortOrder        int32   `json:"sortOrder"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.categories.CreateCategory(c.Request().Context(), category.CreateCategoryInput{
		NameEn:           req.NameEn,
		NameAr:           req.NameAr,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		SortOrder:        req.SortOrder,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

type updateCategoryRequest struct {
	NameEn           *string `json:"nameEn"`
	NameAr           *string `json:"nameAr"`
	Description      *string `json:"description"`
	ParentCategoryID *string `json:"parentCategoryId"`
	ClearParent      bool    `json:"clearParent"`
	SortOrder        *int32  `json:"sortOrder"`
	IsActive         *bool   `json:"isActive"`
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.categories.UpdateCategory(c.Request().Context(), c.Param("id"), category.UpdateCategoryInput{
		NameEn:           req.NameEn,
		NameAr:           req.NameAr,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		ClearParent:      req.ClearParent,
		SortOrder:        req.SortOrder,
		IsActive:         req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (h *CategoryHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.categories.SetActive(c.Request().Context(), c.Param("id"), req.IsActive); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
