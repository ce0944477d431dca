package api

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

type reportDownload struct {
	filePath  string
	runID     string
	expiresAt time.Time
}

// reportStore 一次性报告下载，过期或下载后删除临时文件
type reportStore struct {
	mu    sync.Mutex
	items map[string]reportDownload
}

func newReportStore() *reportStore {
	return &reportStore{
		items: make(map[string]reportDownload),
	}
}

func (s *reportStore) put(filePath, runID string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.NewString()
	s.items[token] = reportDownload{
		filePath:  filePath,
		runID:     runID,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *reportStore) get(token string) (reportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	return v, ok
}

func (s *reportStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.items[token]; ok {
		_ = os.Remove(v.filePath)
		delete(s.items, token)
	}
}

func (s *reportStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.items {
		_ = os.Remove(v.filePath)
		delete(s.items, k)
	}
}

func (s *reportStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			_ = os.Remove(v.filePath)
			delete(s.items, k)
		}
	}
}
