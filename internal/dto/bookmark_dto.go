package dto

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type RenameGroupRequest struct {
	Name string `json:"name"`
}

type MoveBookmarkRequest struct {
	GroupID string `json:"groupId"`
}

type ReorderBookmarksRequest struct {
	BookmarkIDs []string `json:"bookmarkIds"`
}
