package rabbitmq

const (
	FOLLOWS_QUEUE                         = "follows"
	FOLLOWERS_NEW_POST_NOTIFICATIONS_QUEUE = "followers-new-post-notifications"
)
