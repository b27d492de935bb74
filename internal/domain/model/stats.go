package model

// LinkClicks is the accumulated click count for one link.
type LinkClicks struct {
	LinkID string
	Title  string
	Clicks int64
}

// ProfileStats is the analytics summary shown on the owner dashboard.
type ProfileStats struct {
	UserID     string
	Views      int64
	LinkClicks []LinkClicks
}
