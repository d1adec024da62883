package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"library-fees/internal/clients"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (s *memoryStore) Store(_ context.Context, fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[fileName] = data
	return "/files/" + fileName, nil
}

func (s *memoryStore) only(t *testing.T) []byte {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.files, 1)
	for _, data := range s.files {
		return data
	}
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(e string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func (n *recordingNotifier) NotifyExportProgress(_ context.Context, _ string, _ float64, stage string) error {
	n.record("progress:" + stage)
	return nil
}

func (n *recordingNotifier) NotifyExportComplete(context.Context, string, string, string) error {
	n.record("complete")
	return nil
}

func (n *recordingNotifier) NotifyExportFailed(context.Context, string, string) error {
	n.record("failed")
	return nil
}

func newExportService(t *testing.T, materials MaterialLister, store FileStore) (*ExportService, *recordingNotifier, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc, err := clients.NewRedisClient(clients.RedisConfig{Addr: mr.Addr(), Timeout: time.Second, Prefix: "test_"})
	require.NoError(t, err)
	t.Cleanup(rc.Close)

	notifier := &recordingNotifier{}
	return NewExportService(materials, rc, store, notifier), notifier, mr
}

func waitForExport(t *testing.T, svc *ExportService, id string, done func(ExportView) bool) ExportView {
	t.Helper()

	var view ExportView
	require.Eventually(t, func() bool {
		v, err := svc.GetExport(context.Background(), id)
		if err != nil {
			return false
		}
		view = v
		return done(v)
	}, 5*time.Second, 20*time.Millisecond)
	return view
}

func TestInventoryExport_WritesOneSheetPerType(t *testing.T) {
	// arrange
	store := &memoryStore{}
	svc, notifier, mr := newExportService(t, sampleCatalog(), store)

	// act
	id, err := svc.StartInventoryExport(context.Background())
	require.NoError(t, err)

	// assert
	assert.Regexp(t, `^exports:[0-9a-f-]{36}$`, id)
	view := waitForExport(t, svc, id, func(v ExportView) bool { return v.Progress == 100 })

	require.NotNil(t, view.FileURL)
	assert.Equal(t, "/files/"+view.FileName, *view.FileURL)
	assert.Equal(t, "inventory", view.Type)
	assert.Empty(t, view.Error)
	assert.True(t, mr.Exists("test_"+id))

	f, err := excelize.OpenReader(bytes.NewReader(store.only(t)))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Libros", "Revistas", "Videos"}, f.GetSheetList())

	title, _ := f.GetCellValue("Libros", "B2")
	assert.Equal(t, "Clean Architecture", title)
	issue, _ := f.GetCellValue("Revistas", "D2")
	assert.Equal(t, "182", issue)
	format, _ := f.GetCellValue("Videos", "E2")
	assert.Equal(t, "DVD", format)

	require.Eventually(t, func() bool {
		events := notifier.snapshot()
		return len(events) > 0 && events[len(events)-1] == "complete"
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{
		"progress:Libros", "progress:Revistas", "progress:Videos",
		"progress:uploading", "progress:ready", "complete",
	}, notifier.snapshot())
}

func TestInventoryExport_StoreFailure(t *testing.T) {
	svc, notifier, _ := newExportService(t, sampleCatalog(), &memoryStore{err: errBoom})

	id, err := svc.StartInventoryExport(context.Background())
	require.NoError(t, err)

	view := waitForExport(t, svc, id, func(v ExportView) bool { return v.Error != "" })
	assert.Contains(t, view.Error, "boom")
	assert.Nil(t, view.FileURL)
	assert.Less(t, view.Progress, 100.0)

	require.Eventually(t, func() bool {
		events := notifier.snapshot()
		return len(events) > 0 && events[len(events)-1] == "failed"
	}, time.Second, 10*time.Millisecond)
}

func TestInventoryExport_RepositoryFailure(t *testing.T) {
	svc, _, _ := newExportService(t, fakeMaterials{err: errBoom}, &memoryStore{})

	id, err := svc.StartInventoryExport(context.Background())
	require.NoError(t, err)

	view := waitForExport(t, svc, id, func(v ExportView) bool { return v.Error != "" })
	assert.Contains(t, view.Error, "load Libros")
}

func TestStartInventoryExport_RequiresStore(t *testing.T) {
	svc := NewExportService(sampleCatalog(), nil, nil, nil)

	_, err := svc.StartInventoryExport(context.Background())

	assert.Error(t, err)
}

func TestListExports_NewestFirstAndDropsExpired(t *testing.T) {
	// arrange
	svc, _, mr := newExportService(t, sampleCatalog(), &memoryStore{})
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, svc.saveStatus(ctx, &ExportStatus{Key: "exports:old", Type: "inventory", Created: now.Add(-2 * time.Hour)}))
	require.NoError(t, svc.saveStatus(ctx, &ExportStatus{Key: "exports:new", Type: "inventory", Created: now.Add(-5 * time.Minute)}))
	_, err := mr.SAdd("test_"+exportSetKey, "exports:gone")
	require.NoError(t, err)

	// act
	views, err := svc.ListExports(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "exports:new", views[0].Key)
	assert.Equal(t, "5 minutes ago", views[0].Age)
	assert.Equal(t, "exports:old", views[1].Key)
	assert.Equal(t, "2 hours ago", views[1].Age)

	members, err := mr.Members("test_" + exportSetKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"exports:old", "exports:new"}, members)
}

func TestGetExport_NotFound(t *testing.T) {
	svc, _, _ := newExportService(t, sampleCatalog(), &memoryStore{})

	_, err := svc.GetExport(context.Background(), "exports:missing")

	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestExportStatus_ExpiresWithTTL(t *testing.T) {
	svc, _, mr := newExportService(t, sampleCatalog(), &memoryStore{})
	ctx := context.Background()

	require.NoError(t, svc.saveStatus(ctx, &ExportStatus{Key: "exports:1", Created: time.Now()}))
	assert.Equal(t, exportTTL, mr.TTL("test_exports:1"))

	mr.FastForward(exportTTL + time.Second)

	_, err := svc.GetExport(ctx, "exports:1")
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestHumanizeAgo(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Minute, "just now"},
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{25 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
		{40 * 24 * time.Hour, "2024-01-21"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, humanizeAgo(now, now.Add(-tc.ago)), tc.ago.String())
	}
}
