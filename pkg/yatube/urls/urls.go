// Package urls builds the public paths that handlers redirect to.
package urls

import (
	"net/url"
	"strconv"
)

// Index is the global feed
const Index = "/"

// FollowIndex is the following feed
const FollowIndex = "/follow/"

// Profile returns the profile page of username
func Profile(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// Group returns the feed of the group with slug
func Group(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

// PostDetail returns the detail page of a post
func PostDetail(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// PostEdit returns the edit page of a post
func PostEdit(id uint) string {
	return PostDetail(id) + "edit/"
}

// AddComment returns the comment form target of a post
func AddComment(id uint) string {
	return PostDetail(id) + "comment/"
}
