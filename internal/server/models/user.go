package models

// User is an account that can log in to the panel. The password is stored
// and compared in plain text.
type User struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Email    string `json:"email" yaml:"email"`
	Name     string `json:"name" yaml:"name"`
}

func (u User) GetID() int { return u.ID }

func (u User) WithID(id int) User {
	u.ID = id
	return u
}

// PublicUser is the view of a User that may leave the server.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Public strips the password.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name}
}
