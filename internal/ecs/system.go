package ecs

import (
	"reflect"
	"time"
)

// System is one stage of the World update.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World, dt float64)

// Update implements System.
func (f SystemFunc) Update(w *World, dt float64) { f(w, dt) }

// Named lets a system report its own name in Stats.
type Named interface {
	Name() string
}

// SystemStats describes how often and how long a system ran.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	lastDuration   time.Duration
	totalDuration  time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// AddSystem appends s to the update order.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	w.stats = append(w.stats, &systemStatsInternal{
		name:        systemName(s),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Stats returns per-system execution statistics in update order.
func (w *World) Stats() []SystemStats {
	out := make([]SystemStats, len(w.stats))
	for i, s := range w.stats {
		var avg time.Duration
		minD := s.minDuration
		if s.executionCount > 0 {
			avg = s.totalDuration / time.Duration(s.executionCount)
		} else {
			minD = 0
		}
		out[i] = SystemStats{
			Name:           s.name,
			ExecutionCount: s.executionCount,
			MinDuration:    minD,
			MaxDuration:    s.maxDuration,
			AvgDuration:    avg,
			LastDuration:   s.lastDuration,
			TotalDuration:  s.totalDuration,
		}
	}
	return out
}

func systemName(s System) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "system"
	}
	return t.Name()
}
