package handler

type existsResponse struct {
	Exists bool `json:"exists"`
}

type wordCountResponse struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

type totalWordsResponse struct {
	TotalWords int64 `json:"total_words"`
}

type totalFlaggedWordsResponse struct {
	TotalFlaggedWords int64 `json:"total_flagged_words"`
}

type flaggedWordsResponse struct {
	Words map[string]int64 `json:"words"`
}

type successResponse struct {
	Success bool `json:"success"`
}
