package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type MessageResponse struct {
	ID        int64  `json:"id"`
	IsAI      bool   `json:"is_ai"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type DocumentResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	FilePath    string `json:"file_path"`
	IsProcessed bool   `json:"is_processed"`
}
