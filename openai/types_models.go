package openai

// ModelQuery identifies the model looked up by Client.Model.
type ModelQuery struct {
	Model string
}

// ModelResult describes one model.
type ModelResult struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelsResult is returned by /v1/models.
type ModelsResult struct {
	Object string        `json:"object"`
	Data   []ModelResult `json:"data"`
}

// ModerationsQuery is the body of /v1/moderations.
type ModerationsQuery struct {
	Input EmbeddingsInput `json:"input"`
	Model string          `json:"model,omitempty"`
}

// ModerationsResult is returned by /v1/moderations.
type ModerationsResult struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []ModerationResult `json:"results"`
}

// ModerationResult classifies one input.
type ModerationResult struct {
	Flagged        bool               `json:"flagged"`
	Categories     map[string]bool    `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

// FlaggedCategories returns the names of the categories marked true.
func (r ModerationResult) FlaggedCategories() []string {
	var names []string
	for name, flagged := range r.Categories {
		if flagged {
			names = append(names, name)
		}
	}
	return names
}
