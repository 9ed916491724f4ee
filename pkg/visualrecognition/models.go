package visualrecognition

type ClassResult struct {
	Class         string  `json:"class"`
	Score         float64 `json:"score"`
	TypeHierarchy string  `json:"type_hierarchy,omitempty"`
}

type ClassifierResult struct {
	Name         string        `json:"name"`
	ClassifierID string        `json:"classifier_id"`
	Classes      []ClassResult `json:"classes"`
}

type ErrorInfo struct {
	Code        int64  `json:"code"`
	Description string `json:"description"`
	ErrorID     string `json:"error_id"`
}

type ClassifiedImage struct {
	SourceURL   string             `json:"source_url,omitempty"`
	ResolvedURL string             `json:"resolved_url,omitempty"`
	Image       string             `json:"image,omitempty"`
	Error       *ErrorInfo         `json:"error,omitempty"`
	Classifiers []ClassifierResult `json:"classifiers"`
}

type WarningInfo struct {
	WarningID   string `json:"warning_id"`
	Description string `json:"description"`
}

type ClassifiedImages struct {
	CustomClasses   int64             `json:"custom_classes"`
	ImagesProcessed int64             `json:"images_processed"`
	Images          []ClassifiedImage `json:"images"`
	Warnings        []WarningInfo     `json:"warnings,omitempty"`
}

type FaceAge struct {
	Min   int64   `json:"min,omitempty"`
	Max   int64   `json:"max,omitempty"`
	Score float64 `json:"score"`
}

type FaceGender struct {
	Gender string  `json:"gender"`
	Score  float64 `json:"score"`
}

type FaceLocation struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

type Face struct {
	Age          *FaceAge      `json:"age,omitempty"`
	Gender       *FaceGender   `json:"gender,omitempty"`
	FaceLocation *FaceLocation `json:"face_location,omitempty"`
}

type ImageWithFaces struct {
	Faces       []Face     `json:"faces"`
	Image       string     `json:"image,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"`
	ResolvedURL string     `json:"resolved_url,omitempty"`
	Error       *ErrorInfo `json:"error,omitempty"`
}

type DetectedFaces struct {
	ImagesProcessed int64            `json:"images_processed"`
	Images          []ImageWithFaces `json:"images"`
	Warnings        []WarningInfo    `json:"warnings,omitempty"`
}

type Class struct {
	Class string `json:"class"`
}

type Classifier struct {
	ClassifierID string  `json:"classifier_id"`
	Name         string  `json:"name"`
	Owner        string  `json:"owner,omitempty"`
	Status       string  `json:"status,omitempty"`
	Explanation  string  `json:"explanation,omitempty"`
	Created      string  `json:"created,omitempty"`
	Classes      []Class `json:"classes,omitempty"`
}

type Classifiers struct {
	Classifiers []Classifier `json:"classifiers"`
}
