package librarysvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOwnerFilter(t *testing.T) {
	owner := primitive.NewObjectID()

	// User đã đăng nhập: filter theo ownerId, bỏ qua session
	filter := OwnerFilter(&owner, "anon-xyz")
	assert.Equal(t, bson.M{"ownerId": owner}, filter)

	// Guest: filter theo anonymousSessionId
	filter = OwnerFilter(nil, "anon-xyz")
	assert.Equal(t, bson.M{"anonymousSessionId": "anon-xyz"}, filter)
}

func TestParseVideoSort(t *testing.T) {
	cases := []struct {
		sort      string
		wantField string
		wantOrder int
	}{
		{sort: "", wantField: "createdAt", wantOrder: -1},
		{sort: "createdAt", wantField: "createdAt", wantOrder: 1},
		{sort: "-createdAt", wantField: "createdAt", wantOrder: -1},
		{sort: "title", wantField: "title", wantOrder: 1},
		{sort: "-rating", wantField: "rating", wantOrder: -1},
		{sort: "duration", wantField: "duration", wantOrder: 1},
		{sort: "-publishedAt", wantField: "publishedAt", wantOrder: -1},
		// Field lạ: giữ mặc định createdAt nhưng vẫn tôn trọng chiều sort
		{sort: "hackerField", wantField: "createdAt", wantOrder: 1},
		{sort: "-hackerField", wantField: "createdAt", wantOrder: -1},
	}

	for _, tc := range cases {
		got := parseVideoSort(tc.sort)
		assert.Equal(t, bson.D{{Key: tc.wantField, Value: tc.wantOrder}}, got, "sort %q", tc.sort)
	}
}
