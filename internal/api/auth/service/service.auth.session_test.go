package authsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIncrementVideoCountFilter(t *testing.T) {
	// Tăng: chỉ cần match theo sessionId
	filter := IncrementVideoCountFilter("anon-abc", 1)
	assert.Equal(t, bson.M{"sessionId": "anon-abc"}, filter)

	// Giảm: chỉ match session còn đủ videoCount, bộ đếm không bao giờ âm
	filter = IncrementVideoCountFilter("anon-abc", -1)
	assert.Equal(t, bson.M{
		"sessionId":  "anon-abc",
		"videoCount": bson.M{"$gte": int64(1)},
	}, filter)

	filter = IncrementVideoCountFilter("anon-abc", -3)
	assert.Equal(t, bson.M{"$gte": int64(3)}, filter["videoCount"])
}
