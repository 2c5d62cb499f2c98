package collector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MonitorBoard/internal/model"
)

func TestPayload_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"array", `[{"id":1},{"id":2}]`, []int64{1, 2}},
		{"bare object", `{"id":7}`, []int64{7}},
		{"empty array", `[]`, []int64{}},
		{"null", `null`, []int64{}},
		{"absent", ``, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Payload[model.TransferRecord]
			require.NoError(t, p.UnmarshalJSON([]byte(tt.raw)))
			items := Normalize(p)
			require.NotNil(t, items)
			ids := make([]int64, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPayload_UnmarshalInsideEnvelope(t *testing.T) {
	var env struct {
		Data Payload[model.Notification] `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"code":200,"data":{"id":3,"type":"ETH_ALERT"}}`), &env))
	require.NotNil(t, env.Data.One)
	assert.Equal(t, "ETH_ALERT", env.Data.One.Type)
	assert.Nil(t, env.Data.Many)
}

func TestPayload_Malformed(t *testing.T) {
	var p Payload[model.TransferRecord]
	assert.Error(t, p.UnmarshalJSON([]byte(`[{"id":"x"}]`)))
	assert.True(t, p.Empty())
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Payload[model.TransferRecord]{
		{},
		One(model.TransferRecord{ID: 1}),
		Many([]model.TransferRecord{{ID: 1}, {ID: 2}}),
		Many[model.TransferRecord](nil),
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(Many(once))
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_ListUnchanged(t *testing.T) {
	list := []model.TransferRecord{{ID: 3}, {ID: 1}, {ID: 2}}
	got := Normalize(Many(list))
	assert.Equal(t, list, got)
	assert.Same(t, &list[0], &got[0])
}
