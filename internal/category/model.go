package category

import "time"

type Category struct {
	ID               string      `json:"id"`
	NameEn           string      `json:"nameEn"`
	NameAr           *string     `json:"nameAr,omitempty"`
	Description      *string     `json:"description,omitempty"`
	ParentCategoryID *string     `json:"parentCategoryId,omitempty"`
	IsActive         bool        `json:"isActive"`
	SortOrder        int32       `json:"sortOrder"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	Children         []*Category `json:"children,omitempty"`
}

type CreateCategoryInput struct {
	NameEn           string
	NameAr           *string
	Description      *string
	ParentCategoryID *string
	SortOrder        int32
}

type UpdateCategoryInput struct {
	NameEn           *string
	NameAr           *string
	Description      *string
	ParentCategoryID *string
	// ClearParent moves the category to root. ParentCategoryID is ignored when set.
	ClearParent bool
	SortOrder   *int32
	IsActive    *bool
}
