package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"faco-weekly/internal/clients"
)

// RunListService reads run statuses back out of redis for the API.
type RunListService struct {
	redis *clients.RedisClient
}

func NewRunListService(redis *clients.RedisClient) *RunListService {
	return &RunListService{redis: redis}
}

func (s *RunListService) GetRuns(ctx context.Context, userID int64) ([]interface{}, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	keys, err := s.redis.SMembers(ctx, runSetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get run keys: %w", err)
	}

	var statuses []RunStatus
	for _, key := range keys {
		data, err := s.redis.Get(ctx, key)
		if err != nil {
			continue
		}
		var status RunStatus
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			continue
		}
		if status.UserID == userID {
			statuses = append(statuses, status)
		}
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	var runs []interface{}
	for _, status := range statuses {
		runs = append(runs, runMap(status))
	}
	return runs, nil
}

func (s *RunListService) GetRun(ctx context.Context, runID string, userID int64) (interface{}, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	data, err := s.redis.Get(ctx, runID)
	if err != nil {
		return nil, errors.New("run not found")
	}

	var status RunStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to parse run status: %w", err)
	}
	if status.UserID != userID {
		return nil, errors.New("run not found")
	}
	return runMap(status), nil
}

func runMap(status RunStatus) map[string]interface{} {
	m := map[string]interface{}{
		"key":        status.Key,
		"type":       status.Type,
		"user_id":    status.UserID,
		"periodo":    status.Periodo,
		"progress":   status.Progress,
		"file_url":   status.FileURL,
		"created_at": humanizeAgo(status.Created),
	}
	if status.Error != nil {
		m["error"] = *status.Error
	}
	if status.Resumen != nil {
		m["resumen"] = status.Resumen
	}
	if status.Reportes != nil {
		m["reportes"] = status.Reportes
	}
	if status.Diagnosticos != nil {
		m["diagnosticos"] = status.Diagnosticos
	}
	return m
}

func humanizeAgo(t time.Time) string {
	now := time.Now()
	if t.After(now) {
		return "recién"
	}

	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	if minutes < 1 {
		return "recién"
	}
	if minutes < 60 {
		return fmt.Sprintf("hace %d min", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		if hours == 1 {
			return "hace 1 hora"
		}
		return fmt.Sprintf("hace %d horas", hours)
	}
	days := hours / 24
	if days < 30 {
		if days == 1 {
			return "hace 1 día"
		}
		return fmt.Sprintf("hace %d días", days)
	}
	return t.Format("02.01.2006 15:04")
}
