package models

// Post is a piece of content written by a user. UserID is not checked
// against the users collection.
type Post struct {
	ID     int    `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
	UserID int    `json:"userId" yaml:"userId"`
}

func (p Post) GetID() int { return p.ID }

func (p Post) WithID(id int) Post {
	p.ID = id
	return p
}
