package models

// Identity is the cross-service projection of a user. The content service
// receives it from the identity resolver and echoes it in responses; it is
// never persisted on the content side.
type Identity struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ImageFile      string `json:"image_file"`
	FollowingCount int    `json:"following_count"`
	FollowerCount  int    `json:"follower_count"`
}
