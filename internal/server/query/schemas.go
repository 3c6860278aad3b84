package query

import "github.com/dmitrijs2005/adminpanel/internal/server/models"

// UserSchema leaves the password out so it can be neither sorted nor
// matched on.
var UserSchema = Schema[models.User]{
	"id":       IntField(func(u models.User) int { return u.ID }),
	"username": StringField(func(u models.User) string { return u.Username }),
	"email":    StringField(func(u models.User) string { return u.Email }),
	"name":     StringField(func(u models.User) string { return u.Name }),
}

var PostSchema = Schema[models.Post]{
	"id":     IntField(func(p models.Post) int { return p.ID }),
	"title":  StringField(func(p models.Post) string { return p.Title }),
	"body":   StringField(func(p models.Post) string { return p.Body }),
	"userId": IntField(func(p models.Post) int { return p.UserID }),
}
