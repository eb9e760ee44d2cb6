package mocks

import "linkdex"

// Storage ...
type Storage = linkdex.Storage

// Snapshotter ...
type Snapshotter = linkdex.Snapshotter

//go:generate moq -rm -out linkdex_mocks.go . Storage Snapshotter
