package models

import "time"

// Verdict is the backend-computed authenticity classification.
type Verdict string

const (
	VerdictAuthentic  Verdict = "AUTHENTIC"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictFake       Verdict = "FAKE"
)

// Display thresholds for rendering score categories. The authoritative
// verdict always comes from the backend response; these constants only
// pick colors/labels for raw scores shown next to it.
const (
	ThresholdAuthentic  = 0.90
	ThresholdSuspicious = 0.70
)

// VerdictForScore maps a [0,1] score onto a display category using the
// fixed client-side thresholds.
func VerdictForScore(score float64) Verdict {
	switch {
	case score >= ThresholdAuthentic:
		return VerdictAuthentic
	case score >= ThresholdSuspicious:
		return VerdictSuspicious
	default:
		return VerdictFake
	}
}

// Scores holds the sub-scores fused by the backend into the final score.
// All values are in [0,1].
type Scores struct {
	CNNScore      float64 `json:"cnn_score"`
	OCRConfidence float64 `json:"ocr_confidence"`
	DBMatchScore  float64 `json:"db_match_score"`
	FinalScore    float64 `json:"final_score"`
}

// ValidationResult is the outcome of the backend validation pipeline for
// one document. Read-only from the client's perspective.
type ValidationResult struct {
	ID            int64             `json:"id"`
	DocumentID    int64             `json:"document_id"`
	Verdict       Verdict           `json:"verdict"`
	Scores        Scores            `json:"scores"`
	ExtractedData map[string]string `json:"extracted_data,omitempty"`
	FieldMatches  map[string]bool   `json:"field_matches,omitempty"`
	ValidatedAt   time.Time         `json:"validated_at"`

	// Document is attached by listing endpoints so history rows can show
	// the original filename.
	Document *Document `json:"document,omitempty"`
}
