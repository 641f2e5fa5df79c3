package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"clinic-scheduler/internal/model"
	"clinic-scheduler/internal/store"
)

const key = "appointments"

var june10 = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

// flakyStore fails writes while broken is set.
type flakyStore struct {
	*store.Memory
	broken bool
	writes int
}

func (f *flakyStore) Set(ctx context.Context, k string, v []byte) error {
	if f.broken {
		return errors.New("disk full")
	}
	f.writes++
	return f.Memory.Set(ctx, k, v)
}

type unreachable struct{}

func (unreachable) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (unreachable) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func jane() model.Appointment {
	return model.Appointment{
		Patient:   "Jane",
		Doctor:    "Dr. Ali",
		Treatment: "Eye Checkup",
		Purpose:   "follow-up",
		Date:      june10,
		Start:     model.NewClock(9, 0),
		End:       model.NewClock(9, 30),
	}
}

func setup(t *testing.T) (*Repository, *flakyStore) {
	t.Helper()
	st := &flakyStore{Memory: store.NewMemory()}
	repo := New(st, key, zap.NewNop(), WithIDs(sequentialIDs()))
	require.NoError(t, repo.Load(context.Background()))
	return repo, st
}

func stored(t *testing.T, st store.Store) []model.Appointment {
	t.Helper()
	data, err := st.Get(context.Background(), key)
	require.NoError(t, err)
	appts, err := decode(data)
	require.NoError(t, err)
	return appts
}

func TestAddToEmpty(t *testing.T) {
	repo, st := setup(t)
	assert.Empty(t, repo.List())

	got, err := repo.Add(context.Background(), jane())
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])
	assert.Equal(t, list, stored(t, st))
}

func TestAddMintsUUIDs(t *testing.T) {
	repo := New(store.NewMemory(), key, nil)
	a, err := repo.Add(context.Background(), jane())
	require.NoError(t, err)
	b, err := repo.Add(context.Background(), jane())
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddIgnoresCallerID(t *testing.T) {
	repo, _ := setup(t)
	in := jane()
	in.ID = "chosen-by-caller"

	got, err := repo.Add(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
}

func TestListOrderAndCopy(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.Add(ctx, jane())
		require.NoError(t, err)
	}

	list := repo.List()
	assert.Equal(t, "id-1", list[0].ID)
	assert.Equal(t, "id-3", list[2].ID)

	list[0].Patient = "mutated"
	got, ok := repo.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, "Jane", got.Patient)
}

func TestUpdate(t *testing.T) {
	repo, st := setup(t)
	ctx := context.Background()
	a, err := repo.Add(ctx, jane())
	require.NoError(t, err)
	_, err = repo.Add(ctx, jane())
	require.NoError(t, err)

	a.Purpose = "new glasses"
	a.End = model.NewClock(10, 0)
	found, err := repo.Update(ctx, a)
	require.NoError(t, err)
	assert.True(t, found)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0], "replaced in place")
	assert.Equal(t, list, stored(t, st))
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	repo, st := setup(t)
	_, err := repo.Add(context.Background(), jane())
	require.NoError(t, err)
	writes := st.writes

	ghost := jane()
	ghost.ID = "ghost"
	found, err := repo.Update(context.Background(), ghost)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, repo.List(), 1)
	assert.Equal(t, writes, st.writes, "no write for a miss")
}

func TestRemoveIdempotent(t *testing.T) {
	repo, st := setup(t)
	ctx := context.Background()
	a, err := repo.Add(ctx, jane())
	require.NoError(t, err)
	b, err := repo.Add(ctx, jane())
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, a.ID))
	once := repo.List()
	require.NoError(t, repo.Remove(ctx, a.ID))
	assert.Equal(t, once, repo.List())

	require.Len(t, once, 1)
	assert.Equal(t, b.ID, once[0].ID)
	assert.Equal(t, once, stored(t, st))

	require.NoError(t, repo.Remove(ctx, "never-existed"))
}

func TestGuardsVetoWrites(t *testing.T) {
	repo, st := setup(t)
	ctx := context.Background()
	a, err := repo.Add(ctx, jane())
	require.NoError(t, err)
	writes := st.writes

	veto := errors.New("overlap")
	var seen int
	guard := func(current []model.Appointment) error {
		seen = len(current)
		return veto
	}

	_, err = repo.Add(ctx, jane(), guard)
	assert.ErrorIs(t, err, veto)
	assert.Equal(t, 1, seen)

	_, err = repo.Update(ctx, a, guard)
	assert.ErrorIs(t, err, veto)

	assert.Len(t, repo.List(), 1)
	assert.Equal(t, writes, st.writes)
}

func TestFailedWriteRollsBack(t *testing.T) {
	repo, st := setup(t)
	ctx := context.Background()
	a, err := repo.Add(ctx, jane())
	require.NoError(t, err)

	st.broken = true

	_, err = repo.Add(ctx, jane())
	assert.ErrorContains(t, err, "disk full")

	changed := a
	changed.Patient = "John"
	_, err = repo.Update(ctx, changed)
	assert.Error(t, err)

	assert.Error(t, repo.Remove(ctx, a.ID))

	assert.Equal(t, []model.Appointment{a}, repo.List())
	assert.Equal(t, repo.List(), stored(t, st))
}

func TestRoundTripEveryEnumeration(t *testing.T) {
	cat := model.DefaultCatalog()
	ctx := context.Background()
	mem := store.NewMemory()
	repo := New(mem, key, zap.NewNop())

	var want []model.Appointment
	for i := 0; i < len(cat.Treatments) || i < len(cat.Doctors); i++ {
		a := model.Appointment{
			Patient:   fmt.Sprintf("patient %d", i),
			Doctor:    cat.Doctors[i%len(cat.Doctors)],
			Treatment: cat.Treatments[i%len(cat.Treatments)],
			Purpose:   "round trip",
			Date:      june10.AddDate(0, 0, i),
			Start:     model.NewClock(8+i, 30),
			End:       model.NewClock(9+i, 0),
		}
		got, err := repo.Add(ctx, a)
		require.NoError(t, err)
		want = append(want, got)
	}

	reloaded := New(mem, key, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, want, reloaded.List())
}

func TestStoredFormat(t *testing.T) {
	repo, st := setup(t)
	_, err := repo.Add(context.Background(), jane())
	require.NoError(t, err)

	data, err := st.Get(context.Background(), key)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "id-1", raw[0]["id"])
	assert.Equal(t, "2024-06-10T00:00:00Z", raw[0]["date"])
	assert.Equal(t, "09:00", raw[0]["start"])
	assert.Equal(t, "09:30", raw[0]["end"])
}

func TestLoadLegacyRecords(t *testing.T) {
	mem := store.NewMemory()
	legacy := `[{"patient":"Jane","doctor":"Dr. Ali","treatment":"Eye Checkup","purpose":"follow-up",
		"date":"2024-06-10T00:00:00.000+05:00","start":"09:00","end":"09:30","id":1718000000000}]`
	require.NoError(t, mem.Set(context.Background(), key, []byte(legacy)))

	repo := New(mem, key, zap.NewNop())
	require.NoError(t, repo.Load(context.Background()))

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "1718000000000", list[0].ID)
	assert.Equal(t, june10, list[0].Date)
	assert.Equal(t, model.NewClock(9, 0), list[0].Start)
}

func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"id":"1"}`,
		"bad date":     `[{"id":"1","date":"someday","start":"09:00","end":"09:30"}]`,
		"bad time":     `[{"id":"1","date":"2024-06-10","start":"9am","end":"09:30"}]`,
		"missing id":   `[{"date":"2024-06-10","start":"09:00","end":"09:30"}]`,
		"duplicate id": `[{"id":"1","date":"2024-06-10","start":"09:00","end":"09:30"},{"id":1,"date":"2024-06-11","start":"09:00","end":"09:30"}]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			mem := store.NewMemory()
			require.NoError(t, mem.Set(context.Background(), key, []byte(data)))

			core, logs := observer.New(zapcore.WarnLevel)
			repo := New(mem, key, zap.New(core))
			require.NoError(t, repo.Load(context.Background()))

			assert.Empty(t, repo.List())
			assert.Equal(t, 1, logs.FilterMessage("stored appointments unreadable, starting empty").Len())
		})
	}
}

func TestLoadStoreFailure(t *testing.T) {
	repo := New(unreachable{}, key, zap.NewNop())
	err := repo.Load(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestSave(t *testing.T) {
	repo, st := setup(t)
	require.NoError(t, repo.Save(context.Background()))
	assert.Empty(t, stored(t, st))
}
