package types

type MessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type UploadRequest struct {
	Title string `json:"title"`
}
