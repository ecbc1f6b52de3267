package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix   = "user:%d"
	postKeyPrefix   = "post:%d"
	feedKey         = "feed:all"
	unreadKeyPrefix = "notifications:unread:%d"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 10 * time.Minute
	FeedTTL        = 30 * time.Second
	UnreadCountTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// FeedKey is the cache key for the anonymous all-posts feed.
func FeedKey() string {
	return feedKey
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(unreadKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), feedKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, feedKey)
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}
