package transfer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/model"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "wishlist_backup_2026-10-15.json", Filename(now))
}

func TestEncode_PrettyShape(t *testing.T) {
	var buf bytes.Buffer
	snap := model.Snapshot{
		Items:      []model.Item{{ID: "item_1", Name: "Lamp", Category: "other"}},
		Categories: []string{"uncategorized"},
		ExportedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, Encode(&buf, snap))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"items\": [\n    {\n"), out)
	assert.Contains(t, out, `"exportedAt": "2026-01-02T03:04:05Z"`)
	assert.Contains(t, out, `"rank": null`)
}

func TestEncode_EmptyCollectionsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, model.Snapshot{}))
	assert.Contains(t, buf.String(), `"items": []`)
	assert.Contains(t, buf.String(), `"categories": []`)
}

func TestDecode_Roundtrip(t *testing.T) {
	rank := 1
	snap := model.Snapshot{
		Items: []model.Item{{
			ID: "item_1", Name: "Lamp", Category: "other", Rank: &rank,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt: time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
		}},
		Categories: []string{"uncategorized", "games"},
		ExportedAt: time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"items": [`))
	require.ErrorIs(t, err, ErrParse)
}

func TestDecode_MissingKeysIsNoop(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{"somethingElse": true}`))
	require.NoError(t, err)
	assert.Nil(t, snap.Items)
	assert.Nil(t, snap.Categories)
}

func TestDecode_OriginalBrowserFormat(t *testing.T) {
	doc := `{
  "items": [
    {
      "id": "item_1700000000000_abc123def",
      "name": "ヘッドホン",
      "budget": "30000",
      "deadline": "",
      "photos": [],
      "category": "家電",
      "notes": "",
      "createdAt": "2023-11-14T22:13:20.000Z",
      "updatedAt": "2023-11-14T22:13:20.000Z",
      "rank": 2
    }
  ],
  "categories": ["未分類", "家電"],
  "exportedAt": "2023-11-15T00:00:00.000Z"
}`
	snap, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	it := snap.Items[0]
	assert.Equal(t, "item_1700000000000_abc123def", it.ID)
	assert.Equal(t, "ヘッドホン", it.Name)
	assert.Equal(t, 2, it.RankValue())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), it.CreatedAt.UTC())
	assert.Equal(t, []string{"未分類", "家電"}, snap.Categories)
}

func TestDecode_WrongTypedFieldsTolerated(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{"items":[{"id":"a","name":"ok","budget":100}],"categories":["x"]}`))
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "ok", snap.Items[0].Name)
	assert.Equal(t, []string{"x"}, snap.Categories)
}

func TestDecode_BadTimestampsKeepItems(t *testing.T) {
	doc := `{"items":[{"id":"a","name":"Lamp","updatedAt":""},{"id":"b","name":"Kite","createdAt":"2024-01-01"}],"exportedAt":"later"}`
	snap, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Lamp", snap.Items[0].Name)
	assert.True(t, snap.Items[0].UpdatedAt.IsZero())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), snap.Items[1].CreatedAt.UTC())
	assert.Nil(t, snap.Categories)
}

func TestDecode_CollectionsMustBeLists(t *testing.T) {
	for _, doc := range []string{
		`{"items":{"id":"a"}}`,
		`{"items":[],"categories":"books"}`,
		`[{"id":"a","name":"Lamp"}]`,
	} {
		_, err := Decode(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrParse, doc)
	}

	snap, err := Decode(strings.NewReader(`{"items":null,"categories":["x"]}`))
	require.NoError(t, err)
	assert.Nil(t, snap.Items)
	assert.Equal(t, []string{"x"}, snap.Categories)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", Filename(time.Now()))
	snap := model.Snapshot{Items: []model.Item{{ID: "a", Name: "A"}}, Categories: []string{"c"}}

	require.NoError(t, WriteFile(path, snap))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Items, got.Items)
	assert.Equal(t, snap.Categories, got.Categories)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrParse)
}
