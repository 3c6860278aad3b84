package query

import (
	"net/url"
	"testing"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posts() []models.Post {
	return []models.Post{
		{ID: 1, Title: "Hello World", Body: "This is my first post", UserID: 1},
		{ID: 2, Title: "Second Post", Body: "This is my second post", UserID: 1},
		{ID: 3, Title: "User Post", Body: "Post from regular user", UserID: 2},
	}
}

func postIDs(ps []models.Post) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Descriptor
	}{
		{"empty", "", Descriptor{Order: Asc, Filters: map[string]string{}}},
		{"single id", "id=2", Descriptor{ID: intPtr(2), Order: Asc, Filters: map[string]string{}}},
		{"comma ids", "id=1,3", Descriptor{IDs: []int{1, 3}, Order: Asc, Filters: map[string]string{}}},
		{"repeated ids", "id=1&id=3", Descriptor{IDs: []int{1, 3}, Order: Asc, Filters: map[string]string{}}},
		{"empty id ignored", "id=", Descriptor{Order: Asc, Filters: map[string]string{}}},
		{"sort desc lower case", "_sort=title&_order=desc", Descriptor{Sort: "title", Order: Desc, Filters: map[string]string{}}},
		{"range", "_start=5&_end=10", Descriptor{Order: Asc, Start: 5, End: intPtr(10), Filters: map[string]string{}}},
		{"non-numeric bounds", "_start=abc&_end=xyz", Descriptor{Order: Asc, Filters: map[string]string{}}},
		{"negative start", "_start=-3", Descriptor{Order: Asc, Filters: map[string]string{}}},
		{"filters", "userId=1&unknown=x&_page=2", Descriptor{Order: Asc, Filters: map[string]string{"userId": "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := Parse(values, PostSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, q := range []string{
		"id=abc",
		"id=1,x",
		"_sort=nope",
		"_order=sideways",
	} {
		t.Run(q, func(t *testing.T) {
			values, err := url.ParseQuery(q)
			require.NoError(t, err)

			_, err = Parse(values, PostSchema)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestParse_PasswordNotQueryable(t *testing.T) {
	values := url.Values{"_sort": {"password"}}
	_, err := Parse(values, UserSchema)
	assert.ErrorIs(t, err, common.ErrorValidation)

	d, err := Parse(url.Values{"password": {"admin123"}}, UserSchema)
	require.NoError(t, err)
	assert.Empty(t, d.Filters)
}

func TestDescriptor_Single(t *testing.T) {
	id, ok := Descriptor{ID: intPtr(4)}.Single()
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	_, ok = Descriptor{IDs: []int{4}}.Single()
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		d         Descriptor
		wantIDs   []int
		wantTotal int
		wantRange string
	}{
		{"no params", Descriptor{Order: Asc}, []int{1, 2, 3}, 3, "posts 0-3/3"},
		{"sort desc", Descriptor{Sort: "id", Order: Desc}, []int{3, 2, 1}, 3, "posts 0-3/3"},
		{"sort by title", Descriptor{Sort: "title", Order: Asc}, []int{1, 2, 3}, 3, "posts 0-3/3"},
		{"sort by userId is stable", Descriptor{Sort: "userId", Order: Desc}, []int{3, 1, 2}, 3, "posts 0-3/3"},
		{"slice", Descriptor{Order: Asc, Start: 1, End: intPtr(2)}, []int{2}, 3, "posts 1-2/3"},
		{"end past length", Descriptor{Order: Asc, Start: 1, End: intPtr(50)}, []int{2, 3}, 3, "posts 1-50/3"},
		{"start past length", Descriptor{Order: Asc, Start: 10, End: intPtr(20)}, []int{}, 3, "posts 10-20/3"},
		{"end before start", Descriptor{Order: Asc, Start: 2, End: intPtr(1)}, []int{}, 3, "posts 2-1/3"},
		{"explicit zero end", Descriptor{Order: Asc, End: intPtr(0)}, []int{}, 3, "posts 0-0/3"},
		{"filter", Descriptor{Order: Asc, Filters: map[string]string{"userId": "1"}}, []int{1, 2}, 2, "posts 0-2/2"},
		{"id set", Descriptor{Order: Asc, IDs: []int{3, 1, 99}}, []int{1, 3}, 2, "posts 0-2/2"},
		{"filter no match", Descriptor{Order: Asc, Filters: map[string]string{"userId": "9"}}, []int{}, 0, "posts 0-0/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(posts(), tt.d, PostSchema)
			assert.Equal(t, tt.wantIDs, postIDs(page.Items))
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantRange, page.ContentRange("posts"))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := posts()
	page := Apply(in, Descriptor{Sort: "id", Order: Desc}, PostSchema)
	require.Len(t, page.Items, 3)

	page.Items[0].Title = "changed"
	assert.Equal(t, []int{1, 2, 3}, postIDs(in))
	assert.Equal(t, "User Post", in[2].Title)
}

func TestApply_UsersScenario(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "admin", Password: "admin123"},
		{ID: 2, Username: "user", Password: "user123"},
	}
	values, err := url.ParseQuery("_sort=id&_order=DESC&_start=0&_end=1")
	require.NoError(t, err)

	d, err := Parse(values, UserSchema)
	require.NoError(t, err)

	page := Apply(users, d, UserSchema)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Items[0].ID)
	assert.Equal(t, "users 0-1/2", page.ContentRange("users"))
}
