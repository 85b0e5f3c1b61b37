package domain

import "time"

// Comment lives in the document store.
//
// RecipeID is kept exactly as it arrived on the request path and is never
// checked against the recipes table, so comments may outlive their recipe.
// Username is a snapshot of the author's name taken when the comment was
// posted; later changes to the user are not propagated.
type Comment struct {
	ID        string
	RecipeID  string
	UserID    UserID
	Username  string
	Text      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
