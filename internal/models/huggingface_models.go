package models

type ClassifierRequest struct {
	Inputs string `json:"inputs"`
}

// ClassifierPrediction is one label/score pair from a hosted
// text-classification model. The inference API returns these either as a
// flat list or nested one list per input.
type ClassifierPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
