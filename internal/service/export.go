package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"library-fees/internal/clients"
	"library-fees/internal/domain"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var ErrExportNotFound = errors.New("export not found")

// ExportStatus is the record kept in Redis for every export.
type ExportStatus struct {
	Key      string    `json:"key"`
	Type     string    `json:"type"`
	Progress float64   `json:"progress"`
	FileURL  *string   `json:"file_url"`
	FileName string    `json:"file_name,omitempty"`
	Error    string    `json:"error,omitempty"`
	Created  time.Time `json:"created_at"`
}

// ExportView is what the API returns for an export.
type ExportView struct {
	Key       string    `json:"key"`
	Type      string    `json:"type"`
	Progress  float64   `json:"progress"`
	FileURL   *string   `json:"file_url"`
	FileName  string    `json:"file_name,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Age       string    `json:"age"`
}

const (
	exportSetKey  = "export_ids"
	exportTTL     = 20 * time.Minute
	inventoryType = "inventory"
)

// FileStore persists a generated file and returns a URL it can be downloaded from.
type FileStore interface {
	Store(ctx context.Context, fileName string, data []byte) (string, error)
}

type ExportNotifier interface {
	NotifyExportProgress(ctx context.Context, exportID string, progress float64, stage string) error
	NotifyExportComplete(ctx context.Context, exportID, url, filename string) error
	NotifyExportFailed(ctx context.Context, exportID, errMsg string) error
}

type ExportService struct {
	materials MaterialLister
	redis     *clients.RedisClient
	store     FileStore
	ws        ExportNotifier
	now       func() time.Time
}

func NewExportService(
	materials MaterialLister,
	redis *clients.RedisClient,
	store FileStore,
	ws ExportNotifier,
) *ExportService {
	return &ExportService{
		materials: materials,
		redis:     redis,
		store:     store,
		ws:        ws,
		now:       time.Now,
	}
}

type sheetSpec struct {
	name    string
	headers []string
	rows    func(ctx context.Context, m MaterialLister) ([][]any, error)
}

var inventorySheets = []sheetSpec{
	{
		name:    "Libros",
		headers: []string{"ID", "Title", "Author", "ISBN", "Pages"},
		rows: func(ctx context.Context, m MaterialLister) ([][]any, error) {
			books, err := m.ListBooks(ctx)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(books))
			for _, b := range books {
				out = append(out, []any{b.ID, b.Title, deref(b.AuthorOrEditor), deref(b.ISBN), b.Pages})
			}
			return out, nil
		},
	},
	{
		name:    "Revistas",
		headers: []string{"ID", "Title", "Editor", "Issue"},
		rows: func(ctx context.Context, m MaterialLister) ([][]any, error) {
			magazines, err := m.ListMagazines(ctx)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(magazines))
			for _, mg := range magazines {
				out = append(out, []any{mg.ID, mg.Title, deref(mg.AuthorOrEditor), mg.IssueNumber})
			}
			return out, nil
		},
	},
	{
		name:    "Videos",
		headers: []string{"ID", "Title", "Author", "Duration (min)", "Format"},
		rows: func(ctx context.Context, m MaterialLister) ([][]any, error) {
			videos, err := m.ListVideos(ctx)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(videos))
			for _, v := range videos {
				out = append(out, []any{v.ID, v.Title, deref(v.AuthorOrEditor), v.DurationMinutes, deref(v.Format)})
			}
			return out, nil
		},
	},
}

func (s *ExportService) saveStatus(ctx context.Context, st *ExportStatus) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, st.Key, string(data), exportTTL); err != nil {
		return err
	}

	return s.redis.SAdd(ctx, exportSetKey, st.Key)
}

func (s *ExportService) progress(ctx context.Context, st *ExportStatus, progress float64, stage string) {
	st.Progress = progress
	if err := s.saveStatus(ctx, st); err != nil {
		log.Printf("[EXPORT] %s: save status: %v", st.Key, err)
	}
	if s.ws != nil {
		_ = s.ws.NotifyExportProgress(ctx, st.Key, progress, stage)
	}
}

func (s *ExportService) fail(ctx context.Context, st *ExportStatus, err error) {
	log.Printf("[EXPORT] %s failed: %v", st.Key, err)
	st.Error = err.Error()
	if err := s.saveStatus(ctx, st); err != nil {
		log.Printf("[EXPORT] %s: save status: %v", st.Key, err)
	}
	if s.ws != nil {
		_ = s.ws.NotifyExportFailed(ctx, st.Key, st.Error)
	}
}

// StartInventoryExport records a pending export and builds it in the background.
func (s *ExportService) StartInventoryExport(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", errors.New("file storage not configured")
	}

	status := &ExportStatus{
		Key:     fmt.Sprintf("exports:%s", uuid.NewString()),
		Type:    inventoryType,
		Created: s.now(),
	}

	if err := s.saveStatus(ctx, status); err != nil {
		return "", fmt.Errorf("save export status: %w", err)
	}

	log.Printf("[EXPORT] %s started", status.Key)
	go s.runInventoryExport(context.Background(), status)

	return status.Key, nil
}

func (s *ExportService) runInventoryExport(ctx context.Context, status *ExportStatus) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetDocProps(&excelize.DocProperties{Creator: "library-fees"})

	for i, sheet := range inventorySheets {
		if i == 0 {
			_ = f.SetSheetName(f.GetSheetName(0), sheet.name)
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			s.fail(ctx, status, fmt.Errorf("create sheet %s: %w", sheet.name, err))
			return
		}

		rows, err := sheet.rows(ctx, s.materials)
		if err != nil {
			s.fail(ctx, status, fmt.Errorf("load %s: %w", sheet.name, err))
			return
		}

		if err := writeSheet(f, sheet.name, sheet.headers, rows); err != nil {
			s.fail(ctx, status, err)
			return
		}

		// 100 is reserved for when the file URL is ready
		s.progress(ctx, status, float64(i+1)/float64(len(inventorySheets))*90, sheet.name)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.fail(ctx, status, fmt.Errorf("render xlsx: %w", err))
		return
	}

	fileName := fmt.Sprintf("inventory_%s.xlsx", s.now().Format("20060102_150405"))

	s.progress(ctx, status, 95, "uploading")

	url, err := s.store.Store(ctx, fileName, buf.Bytes())
	if err != nil {
		s.fail(ctx, status, fmt.Errorf("store file: %w", err))
		return
	}

	status.FileURL = &url
	status.FileName = fileName
	s.progress(ctx, status, 100, "ready")
	if s.ws != nil {
		_ = s.ws.NotifyExportComplete(ctx, status.Key, url, fileName)
	}

	log.Printf("[EXPORT] %s ready: %s", status.Key, url)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write %s header: %w", sheet, err)
		}
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, r+1, err)
		}
	}

	return nil
}

func (s *ExportService) ListExports(ctx context.Context) ([]ExportView, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	keys, err := s.redis.SMembers(ctx, exportSetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get export keys: %w", err)
	}

	statuses := make([]ExportStatus, 0, len(keys))
	for _, key := range keys {
		status, err := s.loadStatus(ctx, key)
		if errors.Is(err, ErrExportNotFound) {
			// status expired, drop it from the index
			_ = s.redis.SRem(ctx, exportSetKey, key)
			continue
		}
		if err != nil {
			continue
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	views := make([]ExportView, 0, len(statuses))
	for _, st := range statuses {
		views = append(views, s.view(st))
	}
	return views, nil
}

func (s *ExportService) GetExport(ctx context.Context, exportID string) (ExportView, error) {
	if s.redis == nil {
		return ExportView{}, errors.New("redis client not configured")
	}

	status, err := s.loadStatus(ctx, exportID)
	if err != nil {
		return ExportView{}, err
	}
	return s.view(status), nil
}

func (s *ExportService) loadStatus(ctx context.Context, key string) (ExportStatus, error) {
	data, err := s.redis.Get(ctx, key)
	if errors.Is(err, clients.ErrCacheMiss) {
		return ExportStatus{}, ErrExportNotFound
	}
	if err != nil {
		return ExportStatus{}, err
	}

	var status ExportStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return ExportStatus{}, fmt.Errorf("failed to parse export status: %w", err)
	}
	return status, nil
}

func (s *ExportService) view(st ExportStatus) ExportView {
	return ExportView{
		Key:       st.Key,
		Type:      st.Type,
		Progress:  st.Progress,
		FileURL:   st.FileURL,
		FileName:  st.FileName,
		Error:     st.Error,
		CreatedAt: st.Created,
		Age:       humanizeAgo(s.now(), st.Created),
	}
}

func humanizeAgo(now, t time.Time) string {
	if t.After(now) {
		return "just now"
	}

	minutes := int(now.Sub(t).Minutes())
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d %s ago", minutes, plural(minutes, "minute", "minutes"))
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour", "hours"))
	}
	days := hours / 24
	if days < 30 {
		return fmt.Sprintf("%d %s ago", days, plural(days, "day", "days"))
	}
	return t.Format(domain.DateLayout)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
