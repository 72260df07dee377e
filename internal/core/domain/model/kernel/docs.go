// Package kernel holds the shared value objects of the freight domain: identifiers,
// party snapshots, places, vehicles, audit stamps, periods and domain events.
//
// Snapshots are captured by value at the moment a record references another party
// and are stored inline, so historical records keep the names and contacts that were
// valid when they were written even after the directory entry changes.
package kernel
