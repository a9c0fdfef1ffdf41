package inapp

import "testing"

func TestFeedDropsOldestWhenFull(t *testing.T) {
	feed := NewFeed(2)

	feed.Push(NewToast(LevelSuccess, "one"))
	feed.Push(NewToast(LevelInfo, "two"))
	if kept := feed.Push(NewToast(LevelSuccess, "three")); kept {
		t.Fatal("expected push into a full feed to report a drop")
	}

	toasts := feed.Drain()
	if len(toasts) != 2 || toasts[0].Message != "two" || toasts[1].Message != "three" {
		t.Fatalf("unexpected toasts %+v", toasts)
	}
	if feed.Len() != 0 {
		t.Fatal("expected drain to empty the feed")
	}
}

func TestNewToastStampsIdentity(t *testing.T) {
	a := NewToast(LevelInfo, "x")
	b := NewToast(LevelInfo, "x")
	if a.ID == b.ID {
		t.Fatal("expected unique toast ids")
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("expected creation time")
	}
}
