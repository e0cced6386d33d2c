package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/tests"
)

const day = core.DateKey("2024-03-04")

func TestStore_TogglePresence(t *testing.T) {
	store := NewStore(testutil.NewSlots(t, nil))

	rec := store.TogglePresence(day, "kim")
	assert.Equal(t, Record{Present: true, Mood: DefaultMood}, rec, "first toggle of an unseen pair")

	_, err := store.SetMood(day, "kim", MoodTired)
	require.NoError(t, err)
	store.SetMemo(day, "kim", "late bus")

	// toggling twice restores present and leaves mood & memo alone
	before, _ := store.Get(day, "kim")
	store.TogglePresence(day, "kim")
	store.TogglePresence(day, "kim")
	after, ok := store.Get(day, "kim")
	assert.True(t, ok)
	assert.Equal(t, before, after)
}

func TestStore_SetMood(t *testing.T) {
	tests := []struct {
		name    string
		mood    Mood
		wantErr bool
	}{
		{name: "every fixed mood", mood: MoodSick},
		{name: "default", mood: DefaultMood},
		{name: "out of range", mood: "ecstatic", wantErr: true},
		{name: "empty", mood: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(testutil.NewSlots(t, nil))
			rec, err := store.SetMood(day, "lee", tt.mood)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetMood() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assert.True(t, core.IsArgumentError(err))
				assert.False(t, store.Snapshot().HasDate(day), "rejected mood must not materialize a record")
				return
			}
			assert.Equal(t, Record{Present: false, Mood: tt.mood}, rec)
		})
	}
	assert.Len(t, Moods, 8)
}

func TestStore_MarkAllPresent(t *testing.T) {
	store := NewStore(testutil.NewSlots(t, nil))
	_, _ = store.SetMood(day, "kim", MoodHappy)
	store.SetMemo(day, "kim", "brought snacks")

	store.MarkAllPresent(day, []string{"kim", "lee"})

	kim, _ := store.Get(day, "kim")
	assert.Equal(t, Record{Present: true, Mood: MoodHappy, Memo: "brought snacks"}, kim)
	lee, ok := store.Get(day, "lee")
	assert.True(t, ok)
	assert.Equal(t, Record{Present: true, Mood: DefaultMood}, lee)

	// another day is untouched
	_, ok = store.Get("2024-03-05", "lee")
	assert.False(t, ok)
	assert.Len(t, store.Day(day), 2)
}

func TestTable_GetDefault(t *testing.T) {
	rec, ok := Table{}.Get(day, "nobody")
	assert.False(t, ok)
	assert.Equal(t, DefaultRecord(), rec)
}

func TestTable_JSONRoundTrip(t *testing.T) {
	tbl := Table{
		{day, "kim"}:          {Present: true, Mood: MoodCalm, Memo: "ok"},
		{day, "lee"}:          {Present: false, Mood: MoodSad},
		{"2024-03-05", "kim"}: {Present: true, Mood: DefaultMood},
	}
	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"2024-03-04": {"kim": {"present": true, "mood": "calm", "memo": "ok"}, "lee": {"present": false, "mood": "sad", "memo": ""}},
		"2024-03-05": {"kim": {"present": true, "mood": "neutral", "memo": ""}}
	}`, string(data))

	var got Table
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, tbl, got)
	assert.ElementsMatch(t, []core.DateKey{day, "2024-03-05"}, got.Dates())
}

func TestStore_persistRoundTrip(t *testing.T) {
	kv := testutil.OpenKV(t)
	store := NewStore(testutil.NewSlots(t, kv))
	store.TogglePresence(day, "kim")
	_, _ = store.SetMood(day, "lee", MoodAngry)

	reloaded := NewStore(testutil.NewSlots(t, kv))
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestNewStore_corruptSlot(t *testing.T) {
	kv := testutil.OpenKV(t, map[string]string{string(core.SlotAttendance): `{"2024-03-04": [1, 2]}`})
	store := NewStore(testutil.NewSlots(t, kv))
	assert.Empty(t, store.Snapshot())
}
