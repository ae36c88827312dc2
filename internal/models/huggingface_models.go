package models

type (
	ContextualBatchRequest []ContextualRequest
	ContextualRequest      struct {
		RowID int    `json:"row_id"`
		Text  string `json:"text"`
	}
)

type (
	ContextualBatchResponse []ContextualResponse
	ContextualResponse      struct {
		RowID          int     `json:"row_id"`
		SentimentLabel string  `json:"sentiment_label"`
		SentimentScore float64 `json:"sentiment_score"`
		Confidence     float64 `json:"confidence"`
	}
)

type HealthResponse struct {
	Status string `json:"status"`
}
