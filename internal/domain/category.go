package domain

import "time"

// Category is a catalog node. A category with a ParentID is a subcategory;
// products attach to leaf categories only.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}
