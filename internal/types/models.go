package types

// Content types accepted by the pipeline.
const (
	TypeArticle = "article"
	TypeVideo   = "video"
)

// ContentItem is one unit of input media before processing. Immutable once
// built from the run manifest.
type ContentItem struct {
	Source          string  `json:"source"`
	Type            string  `json:"content_type"`
	LanguageHint    string  `json:"language_hint,omitempty"`
	URL             string  `json:"url,omitempty"`
	AudioPath       string  `json:"audio_path,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// ProcessedText is the English text of one item, produced by the translation
// stage (passthrough for English input) or the transcription stage.
type ProcessedText struct {
	Source         string `json:"source"`
	Type           string `json:"content_type"`
	EnglishText    string `json:"english_text"`
	OriginLanguage string `json:"origin_language"`
}

// SentimentRecord is the scored result for one processed item. The four
// scores are the provider's reported distribution over [0,1].
type SentimentRecord struct {
	Source    string  `json:"source"`
	Type      string  `json:"content_type"`
	Sentiment string  `json:"sentiment"`
	Positive  float64 `json:"positive"`
	Negative  float64 `json:"negative"`
	Neutral   float64 `json:"neutral"`
	Mixed     float64 `json:"mixed"`
}

// CostLine is one row of the itemized cost table. The TOTAL line carries no
// usage quantity.
type CostLine struct {
	Service string  `json:"service"`
	Usage   float64 `json:"usage"`
	CostUSD float64 `json:"cost_usd"`
}

// TotalService names the synthetic summary line of the cost table.
const TotalService = "TOTAL"
