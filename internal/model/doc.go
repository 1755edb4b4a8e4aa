package model

// Package model defines domain data structures used across the app: download
// tasks, the batch created by a Download click, worker events, and status
// enums. Structures are designed for direct use in the UI and explicit state
// transitions.
