// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package model

import (
	"encoding/json"
	"fmt"
)

// cacheEnvelope is the on-disk shape the caching collaborator persists.
type cacheEnvelope struct {
	Version   int         `json:"version"`
	Schedules ScheduleMap `json:"schedules"`
}

// MarshalCache serializes the schedule map together with the current
// CacheVersion.
func (m ScheduleMap) MarshalCache() ([]byte, error) {
	return json.Marshal(cacheEnvelope{Version: CacheVersion, Schedules: m})
}

// UnmarshalCache deserializes a previously persisted schedule map,
// rejecting payloads written under a different schema version.
func UnmarshalCache(data []byte) (ScheduleMap, error) {
	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode schedule cache: %w", err)
	}
	if env.Version != CacheVersion {
		return nil, fmt.Errorf("stale schedule cache: version %d, want %d", env.Version, CacheVersion)
	}
	return env.Schedules, nil
}
