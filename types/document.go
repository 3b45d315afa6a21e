package types

import "fmt"

// Document is an uploaded source file tracked through ingestion.
// IsProcessed flips to true only after every page's every chunk is indexed.
type Document struct {
	ID          int64  `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	FilePath    string `bson:"file_path" json:"file_path"`
	IsProcessed bool   `bson:"is_processed" json:"is_processed"`
	CreatedAt   int64  `bson:"created_at" json:"created_at"`
}

// DocumentPage is one extracted page of a document. Pages are written once
// during ingestion and never mutated.
type DocumentPage struct {
	ID         int64  `bson:"_id" json:"id"`
	DocumentID int64  `bson:"document_id" json:"document_id"`
	PageNumber int    `bson:"page_number" json:"page_number"`
	Content    string `bson:"content" json:"content"`
}

// Page is a single extracted page before it is persisted. Number is 1-based
// and matches the source's own pagination; Text may be empty.
type Page struct {
	Number int
	Text   string
}

// VectorMetadata is the payload stored next to every embedding. It carries
// the full provenance of the chunk plus the literal chunk text, so retrieval
// never needs a secondary fetch.
type VectorMetadata struct {
	DocumentID int64  `json:"document_id"`
	PageNumber int    `json:"page_number"`
	ChunkIndex int    `json:"chunk_index"`
	Title      string `json:"title"`
	ChunkText  string `json:"chunk_text"`
}

// Key renders the stable composite record key, e.g. "doc12_p3_c0".
func (m VectorMetadata) Key() string {
	return ChunkKey(m.DocumentID, m.PageNumber, m.ChunkIndex)
}

// ChunkKey renders the vector record key format, which must stay stable
// for index compatibility: doc<document_id>_p<page_number>_c<chunk_index>.
func ChunkKey(documentID int64, pageNumber, chunkIndex int) string {
	return fmt.Sprintf("doc%d_p%d_c%d", documentID, pageNumber, chunkIndex)
}

// QueryMatch is a single similarity search hit. Distance is the cosine
// distance reported by the index (lower is closer); Score is 1 - distance.
type QueryMatch struct {
	Metadata VectorMetadata `json:"metadata"`
	Distance float32        `json:"distance"`
	Score    float32        `json:"score"`
}

// WeatherObservation is the structured result of a weather lookup.
type WeatherObservation struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}
