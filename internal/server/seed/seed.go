// Package seed provides the datasets the in-memory stores start from.
package seed

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/server/models"
	"gopkg.in/yaml.v3"
)

// Dataset is the initial content of every collection.
type Dataset struct {
	Users []models.User `yaml:"users"`
	Posts []models.Post `yaml:"posts"`
}

// Default returns the built-in demo data. Each call returns fresh slices.
func Default() Dataset {
	return Dataset{
		Users: []models.User{
			{ID: 1, Username: "admin", Password: "admin123", Email: "admin@example.com", Name: "管理员"},
			{ID: 2, Username: "user", Password: "user123", Email: "user@example.com", Name: "普通用户"},
		},
		Posts: []models.Post{
			{ID: 1, Title: "Hello World", Body: "This is my first post", UserID: 1},
			{ID: 2, Title: "Second Post", Body: "This is my second post", UserID: 1},
			{ID: 3, Title: "User Post", Body: "Post from regular user", UserID: 2},
		},
	}
}

// Load returns the default dataset, with the sections present in the YAML
// file at path replacing their defaults. An empty path means defaults only.
func Load(path string) (Dataset, error) {
	ds := Default()
	if path == "" {
		return ds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML seed document over the defaults.
func Parse(data []byte) (Dataset, error) {
	var raw struct {
		Users *[]models.User `yaml:"users"`
		Posts *[]models.Post `yaml:"posts"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Dataset{}, fmt.Errorf("parse seed file: %w", err)
	}

	ds := Default()
	if raw.Users != nil {
		ds.Users = *raw.Users
	}
	if raw.Posts != nil {
		ds.Posts = *raw.Posts
	}

	if err := checkIDs("users", ds.Users); err != nil {
		return Dataset{}, err
	}
	if err := checkIDs("posts", ds.Posts); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func checkIDs[T models.Record[T]](name string, recs []T) error {
	seen := make(map[int]bool, len(recs))
	for i, r := range recs {
		id := r.GetID()
		if id <= 0 {
			return fmt.Errorf("%s[%d]: id must be positive, got %d", name, i, id)
		}
		if seen[id] {
			return fmt.Errorf("%s[%d]: duplicate id %d", name, i, id)
		}
		seen[id] = true
	}
	return nil
}
