package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDoc(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "feedme API", doc.Info.Title)
	for path, method := range map[string]string{
		"/entries":             "get",
		"/entries/stats":       "get",
		"/entries/{id}":        "get",
		"/entries/{id}/status": "put",
		"/ingest":              "post",
		"/ingest/continuation": "get",
	} {
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
