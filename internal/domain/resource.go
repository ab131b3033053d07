package domain

import "time"

// PoolKind represents the kind of bookable resources in a pool
type PoolKind string

const (
	PoolCoworking  PoolKind = "coworking"
	PoolLaboratory PoolKind = "laboratory"
	PoolAuditorium PoolKind = "auditorium"
	PoolMeeting    PoolKind = "meeting_room"
)

// ResourcePool represents a named group of interchangeable bookable resources
// Created by operators, rarely mutated, never deleted while reservations reference it
type ResourcePool struct {
	ID       int64
	Name     string
	Kind     PoolKind
	Capacity int // number of resource units in the pool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource represents one physical bookable unit belonging to exactly one pool
type Resource struct {
	ID     int64
	PoolID int64
	Label  string

	CreatedAt time.Time
}
