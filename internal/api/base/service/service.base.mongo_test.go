package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateDataPassthrough(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"title": "mới"}}
	converted, err := ToUpdateData(original)
	require.NoError(t, err)
	assert.Same(t, original, converted, "Pointer UpdateData phải được trả về nguyên vẹn")

	byValue, err := ToUpdateData(UpdateData{Inc: map[string]interface{}{"videoCount": int64(1)}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byValue.Inc["videoCount"])
}

func TestToUpdateDataWrapsPlainMap(t *testing.T) {
	converted, err := ToUpdateData(map[string]interface{}{"rating": 5})
	require.NoError(t, err)
	assert.EqualValues(t, 5, converted.Set["rating"], "Map thường phải được wrap trong $set")
	assert.Nil(t, converted.Inc)
}

func TestUpdateDataMarshalsInc(t *testing.T) {
	// $inc phải đi xuống driver như một operator riêng, không bị gộp vào $set
	raw, err := bson.Marshal(&UpdateData{
		Inc: map[string]interface{}{"videoCount": int64(1)},
		Set: map[string]interface{}{"lastSeenAt": int64(0)},
	})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "$inc")
	assert.Contains(t, doc, "$set")

	// Map rỗng không được sinh operator rỗng (omitempty)
	raw, err = bson.Marshal(&UpdateData{Set: map[string]interface{}{"a": 1}})
	require.NoError(t, err)
	doc = bson.M{}
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "$inc")
}
