package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	IndexPageKeyPrefix = "feed:index:%d"
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	GroupKeyPrefix     = "group:%s"
)

const (
	// DefaultIndexTTL bounds how stale the global feed may appear. The index
	// cache is never invalidated on writes; entries simply expire.
	DefaultIndexTTL = 20 * time.Second

	UserTTL  = 5 * time.Minute
	PostTTL  = 30 * time.Minute
	GroupTTL = 10 * time.Minute
)

// IndexPageKey is keyed by page number only. Every viewer of a given page,
// authenticated or not, shares the same entry.
func IndexPageKey(page int) string {
	return fmt.Sprintf(IndexPageKeyPrefix, page)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
